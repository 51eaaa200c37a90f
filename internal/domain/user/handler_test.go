package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockUserRepo) {
	e := echo.New()
	repo := newMockUserRepo()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))
	return e, repo
}

func TestCreateUserHandler(t *testing.T) {
	e, _ := newTestServer()

	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+15551234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp createUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "/patients/" + resp.User.ID.String() + "/register"
	if resp.Redirect != want {
		t.Errorf("redirect = %q, want %q", resp.Redirect, want)
	}
}

func TestCreateUserHandlerInvalid(t *testing.T) {
	e, _ := newTestServer()

	body := `{"name":"Jane","email":"nope","phone":"+15551234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestGetUserHandler(t *testing.T) {
	e, repo := newTestServer()

	u := &User{Name: "Jane", Email: "jane@example.com", Phone: "+15551234567"}
	_ = repo.Create(context.Background(), u)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+u.ID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d", rec.Code)
	}
}

func TestIntakeFormHandler(t *testing.T) {
	e, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/intake-form", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var widgets []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &widgets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(widgets) != 3 {
		t.Fatalf("widget count = %d", len(widgets))
	}
	if widgets[2]["kind"] != "phone-input" {
		t.Errorf("third widget kind = %v", widgets[2]["kind"])
	}
}
