package patient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/forms"
	"github.com/carebook/carebook/internal/platform/blobstore"
	"github.com/carebook/carebook/pkg/pagination"
)

type Handler struct {
	svc        *Service
	documents  blobstore.DocumentStore
	physicians *physician.Registry
}

func NewHandler(svc *Service, documents blobstore.DocumentStore, physicians *physician.Registry) *Handler {
	return &Handler{svc: svc, documents: documents, physicians: physicians}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.RegisterPatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/registration-form", h.RegistrationForm)
	api.GET("/patients/:id", h.GetPatient)
	api.GET("/patients/user/:userId", h.GetPatientByUser)
}

type registerPatientResponse struct {
	Patient  *Patient `json:"patient"`
	Redirect string   `json:"redirect"`
}

// RegisterPatient accepts the registration either as JSON or as a multipart
// form. With multipart, an optional "identification_document" file is stored
// first and its id merged into the record.
func (h *Handler) RegisterPatient(c echo.Context) error {
	var in RegisterPatientInput
	var err error
	var uploadedDocID string

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		in, err = h.bindMultipart(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		uploadedDocID = in.IdentificationDocumentID
	} else {
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	p, err := h.svc.RegisterPatient(c.Request().Context(), in)
	if err != nil {
		// Don't leave the just-uploaded document orphaned on a failed
		// registration.
		if uploadedDocID != "" {
			_ = h.documents.Delete(c.Request().Context(), uploadedDocID)
		}
		if errors.Is(err, ErrInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, registerPatientResponse{
		Patient:  p,
		Redirect: fmt.Sprintf("/patients/%s/new-appointment", p.UserID),
	})
}

func (h *Handler) bindMultipart(c echo.Context) (RegisterPatientInput, error) {
	form := func(name string) string { return c.FormValue(name) }
	boolForm := func(name string) bool {
		b, _ := strconv.ParseBool(form(name))
		return b
	}

	in := RegisterPatientInput{
		Name:                  form("name"),
		Email:                 form("email"),
		Phone:                 form("phone"),
		BirthDate:             form("birth_date"),
		Gender:                form("gender"),
		Address:               form("address"),
		Occupation:            form("occupation"),
		EmergencyContactName:  form("emergency_contact_name"),
		EmergencyContactPhone: form("emergency_contact_phone"),
		PrimaryPhysicianID:    form("primary_physician_id"),
		Allergies:             form("allergies"),
		CurrentMedication:     form("current_medication"),
		FamilyMedicalHistory:  form("family_medical_history"),
		PastMedicalHistory:    form("past_medical_history"),
		InsuranceProvider:     form("insurance_provider"),
		InsurancePolicyNumber: form("insurance_policy_number"),
		IdentificationType:    form("identification_type"),
		IdentificationNumber:  form("identification_number"),
		TreatmentConsent:      boolForm("treatment_consent"),
		DisclosureConsent:     boolForm("disclosure_consent"),
		PrivacyConsent:        boolForm("privacy_consent"),
	}

	if id := form("user_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return in, fmt.Errorf("invalid user id")
		}
		in.UserID = parsed
	}

	// The document upload is optional.
	file, err := c.FormFile("identification_document")
	if err != nil {
		return in, nil
	}
	src, err := file.Open()
	if err != nil {
		return in, fmt.Errorf("failed to open uploaded file")
	}
	defer src.Close()

	meta, err := h.documents.Upload(c.Request().Context(), blobstore.DocumentMetadata{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		UserID:      in.UserID.String(),
		Category:    "identification-document",
	}, src)
	if err != nil {
		return in, fmt.Errorf("storing identification document: %v", err)
	}
	in.IdentificationDocumentID = meta.ID

	return in, nil
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPatientByUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	p, err := h.svc.GetPatientByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
		}
		p, err := h.svc.GetPatientByUser(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "patient not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, p)
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

// RegistrationForm renders the registration widget list in section order.
func (h *Handler) RegistrationForm(c echo.Context) error {
	fields := RegistrationFields(h.physicians)
	widgets := forms.Render(fields, forms.NewState(fields))
	return c.JSON(http.StatusOK, widgets)
}
