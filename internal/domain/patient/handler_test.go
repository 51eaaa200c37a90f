package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/platform/blobstore"
	"github.com/carebook/carebook/internal/platform/db"
)

func newTestServer() (*echo.Echo, *blobstore.InMemoryStore) {
	e := echo.New()
	registry := physician.DefaultRegistry()
	repo := newMockPatientRepo()
	docs := blobstore.NewInMemoryStore()
	NewHandler(NewService(repo, registry, db.NopTxRunner{}), docs, registry).RegisterRoutes(e.Group("/api/v1"))
	return e, docs
}

func TestRegisterPatientHandlerJSON(t *testing.T) {
	e, _ := newTestServer()

	in := validInput()
	body, _ := json.Marshal(in)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp registerPatientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "/patients/" + in.UserID.String() + "/new-appointment"
	if resp.Redirect != want {
		t.Errorf("redirect = %q, want %q", resp.Redirect, want)
	}
	if resp.Patient.IdentificationDocumentID != nil {
		t.Error("no document was attached")
	}
}

// registrationForm builds a multipart registration body with an attached
// identification document, applying overrides on top of the given input.
func registrationForm(t *testing.T, in RegisterPatientInput, overrides map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"user_id":                 in.UserID.String(),
		"name":                    in.Name,
		"email":                   in.Email,
		"phone":                   in.Phone,
		"birth_date":              in.BirthDate,
		"gender":                  in.Gender,
		"address":                 in.Address,
		"occupation":              in.Occupation,
		"emergency_contact_name":  in.EmergencyContactName,
		"emergency_contact_phone": in.EmergencyContactPhone,
		"primary_physician_id":    in.PrimaryPhysicianID,
		"insurance_provider":      in.InsuranceProvider,
		"insurance_policy_number": in.InsurancePolicyNumber,
		"identification_type":     "Passport",
		"identification_number":   "X1234567",
		"treatment_consent":       "true",
		"disclosure_consent":      "true",
		"privacy_consent":         "true",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	fw, _ := w.CreateFormFile("identification_document", "passport.png")
	_, _ = fw.Write([]byte("scanned passport"))
	_ = w.Close()

	return &buf, w.FormDataContentType()
}

func TestRegisterPatientHandlerMultipart(t *testing.T) {
	e, docs := newTestServer()

	in := validInput()
	buf, contentType := registrationForm(t, in, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp registerPatientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Patient.IdentificationDocumentID == nil {
		t.Fatal("expected stored document id")
	}

	meta, err := docs.GetMetadata(req.Context(), *resp.Patient.IdentificationDocumentID)
	if err != nil {
		t.Fatalf("document not stored: %v", err)
	}
	if meta.Category != "identification-document" {
		t.Errorf("category = %q", meta.Category)
	}
}

func TestRegisterPatientHandlerMultipartInvalidRemovesDocument(t *testing.T) {
	e, docs := newTestServer()

	buf, contentType := registrationForm(t, validInput(), map[string]string{
		"privacy_consent": "false",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	_, total, err := docs.Search(context.Background(), blobstore.SearchParams{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 0 {
		t.Errorf("store holds %d documents after failed registration, want 0", total)
	}
}

func TestRegisterPatientHandlerInvalid(t *testing.T) {
	e, _ := newTestServer()

	in := validInput()
	in.PrivacyConsent = false
	body, _ := json.Marshal(in)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRegistrationFormHandler(t *testing.T) {
	e, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/registration-form", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "file-upload") {
		t.Error("expected the document skeleton widget in the rendered form")
	}
	if !strings.Contains(rec.Body.String(), "Dr. Leila Cameron") {
		t.Error("expected physician options in the rendered form")
	}
}
