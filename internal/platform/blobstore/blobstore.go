// Package blobstore provides document storage for patient uploads, primarily
// the identification documents attached during registration. It defines the
// DocumentStore interface, an in-memory implementation suitable for testing
// and development, and Echo HTTP handlers for multipart upload, download,
// metadata retrieval, deletion, and search.
package blobstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrMissingFileName    = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed document size in bytes (10 MB). Uploads
// are scans or photos of identity paperwork, nothing larger belongs here.
const MaxFileSize = 10 * 1024 * 1024

// AllowedCategories lists valid document category values.
var AllowedCategories = map[string]bool{
	"identification-document": true,
	"insurance-card":          true,
	"other":                   true,
}

// AllowedContentTypes lists accepted upload MIME types.
var AllowedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

// DocumentMetadata describes a stored document.
type DocumentMetadata struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	PatientID   string    `json:"patient_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Category    string    `json:"category"`
	Hash        string    `json:"hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchParams specifies search/filter criteria for documents.
type SearchParams struct {
	PatientID   string
	UserID      string
	Category    string
	ContentType string
	FileName    string // partial match
	Limit       int
	Offset      int
}

// DocumentStore defines the contract for document storage backends.
type DocumentStore interface {
	Upload(ctx context.Context, meta DocumentMetadata, content io.Reader) (*DocumentMetadata, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *DocumentMetadata, error)
	Delete(ctx context.Context, id string) error
	GetMetadata(ctx context.Context, id string) (*DocumentMetadata, error)
	ListByPatient(ctx context.Context, patientID string, category string, limit, offset int) ([]*DocumentMetadata, int, error)
	Search(ctx context.Context, params SearchParams) ([]*DocumentMetadata, int, error)
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

type storedDocument struct {
	metadata DocumentMetadata
	content  []byte
}

// InMemoryStore is a thread-safe, in-memory DocumentStore for testing/dev.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*storedDocument
}

// NewInMemoryStore returns a ready-to-use InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		docs: make(map[string]*storedDocument),
	}
}

// Upload validates inputs, reads the content, computes a SHA-256 hash, and
// stores the document in memory.
func (s *InMemoryStore) Upload(_ context.Context, meta DocumentMetadata, content io.Reader) (*DocumentMetadata, error) {
	if meta.FileName == "" {
		return nil, ErrMissingFileName
	}
	if meta.Category == "" {
		meta.Category = "identification-document"
	}
	if !AllowedCategories[meta.Category] {
		meta.Category = "other"
	}

	// Read content into memory so we can measure size and compute hash.
	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	// Multipart writers that don't set a MIME type send
	// application/octet-stream; sniff those instead of rejecting them.
	if meta.ContentType == "" || meta.ContentType == "application/octet-stream" {
		meta.ContentType = http.DetectContentType(data)
	} else if !AllowedContentTypes[meta.ContentType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContentType, meta.ContentType)
	}

	h := sha256.Sum256(data)

	meta.ID = uuid.New().String()
	meta.Size = int64(len(data))
	meta.Hash = fmt.Sprintf("%x", h)
	meta.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.docs[meta.ID] = &storedDocument{
		metadata: meta,
		content:  data,
	}
	s.mu.Unlock()

	out := meta // copy
	return &out, nil
}

// Download returns an io.ReadCloser over the document content and its metadata.
func (s *InMemoryStore) Download(_ context.Context, id string) (io.ReadCloser, *DocumentMetadata, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, ErrDocumentNotFound
	}

	meta := doc.metadata // copy
	return io.NopCloser(bytes.NewReader(doc.content)), &meta, nil
}

// Delete removes a document by ID.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.docs, id)
	return nil
}

// GetMetadata returns document metadata without content.
func (s *InMemoryStore) GetMetadata(_ context.Context, id string) (*DocumentMetadata, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrDocumentNotFound
	}

	meta := doc.metadata // copy
	return &meta, nil
}

// ListByPatient returns documents for a given patient, optionally filtered by
// category. It returns the matching page and the total count.
func (s *InMemoryStore) ListByPatient(_ context.Context, patientID, category string, limit, offset int) ([]*DocumentMetadata, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*DocumentMetadata
	for _, d := range s.docs {
		if d.metadata.PatientID != patientID {
			continue
		}
		if category != "" && d.metadata.Category != category {
			continue
		}
		m := d.metadata // copy
		matched = append(matched, &m)
	}

	total := len(matched)
	return pageOf(matched, limit, offset), total, nil
}

// Search returns documents matching the given search parameters.
func (s *InMemoryStore) Search(_ context.Context, params SearchParams) ([]*DocumentMetadata, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*DocumentMetadata
	for _, d := range s.docs {
		if !matchesSearch(&d.metadata, params) {
			continue
		}
		m := d.metadata // copy
		matched = append(matched, &m)
	}

	total := len(matched)
	return pageOf(matched, params.Limit, params.Offset), total, nil
}

func pageOf(items []*DocumentMetadata, limit, offset int) []*DocumentMetadata {
	if limit <= 0 {
		limit = 20
	}
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func matchesSearch(m *DocumentMetadata, p SearchParams) bool {
	if p.PatientID != "" && m.PatientID != p.PatientID {
		return false
	}
	if p.UserID != "" && m.UserID != p.UserID {
		return false
	}
	if p.Category != "" && m.Category != p.Category {
		return false
	}
	if p.ContentType != "" && m.ContentType != p.ContentType {
		return false
	}
	if p.FileName != "" && !strings.Contains(strings.ToLower(m.FileName), strings.ToLower(p.FileName)) {
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// HTTP handler
// ---------------------------------------------------------------------------

// listResponse is the JSON envelope returned by list/search endpoints.
type listResponse struct {
	Items []*DocumentMetadata `json:"items"`
	Total int                 `json:"total"`
}

// Handler provides Echo HTTP handlers for document operations.
type Handler struct {
	store DocumentStore
}

// NewHandler creates a new Handler.
func NewHandler(store DocumentStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts document routes on the supplied Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/documents", h.handleUpload)
	g.GET("/documents/patient/:patientId", h.handleListByPatient)
	g.GET("/documents/:id/content", h.handleDownload)
	g.GET("/documents/:id", h.handleGetMetadata)
	g.DELETE("/documents/:id", h.handleDelete)
	g.GET("/documents", h.handleSearch)
}

func (h *Handler) handleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open uploaded file"})
	}
	defer src.Close()

	meta := DocumentMetadata{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		PatientID:   c.FormValue("patient_id"),
		UserID:      c.FormValue("user_id"),
		Category:    c.FormValue("category"),
	}

	result, err := h.store.Upload(c.Request().Context(), meta, src)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrMissingFileName):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrInvalidContentType):
			return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) handleDownload(c echo.Context) error {
	id := c.Param("id")

	rc, meta, err := h.store.Download(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer rc.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, meta.FileName))
	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

func (h *Handler) handleGetMetadata(c echo.Context) error {
	id := c.Param("id")

	meta, err := h.store.GetMetadata(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, meta)
}

func (h *Handler) handleDelete(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleListByPatient(c echo.Context) error {
	patientID := c.Param("patientId")
	category := c.QueryParam("category")
	limit := intParam(c, "limit", 20)
	offset := intParam(c, "offset", 0)

	items, total, err := h.store.ListByPatient(c.Request().Context(), patientID, category, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if items == nil {
		items = []*DocumentMetadata{}
	}

	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *Handler) handleSearch(c echo.Context) error {
	params := SearchParams{
		PatientID:   c.QueryParam("patient_id"),
		UserID:      c.QueryParam("user_id"),
		Category:    c.QueryParam("category"),
		ContentType: c.QueryParam("content_type"),
		FileName:    c.QueryParam("file_name"),
		Limit:       intParam(c, "limit", 20),
		Offset:      intParam(c, "offset", 0),
	}

	items, total, err := h.store.Search(c.Request().Context(), params)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if items == nil {
		items = []*DocumentMetadata{}
	}

	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

func intParam(c echo.Context, name string, defaultVal int) int {
	v := c.QueryParam(name)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
