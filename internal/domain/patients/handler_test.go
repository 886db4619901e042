package patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := NewService(newMockPatientRepo(), &mockDocRepo{}, zerolog.Nop())
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"John Doe","age":30,"gender":"male","contact":"1234567890"}`
	req := httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ID == 0 {
		t.Error("expected id in response")
	}
	if p.Name != "John Doe" {
		t.Errorf("expected John Doe, got %s", p.Name)
	}
}

func TestHandler_CreatePatient_ValidationError(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"John Doe","age":150,"gender":"male","contact":"1234567890"}`
	req := httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	if err == nil {
		t.Fatal("expected error for out-of-range age")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	msg, ok := he.Message.(string)
	if !ok || !strings.Contains(msg, "age must be between 1 and 120") {
		t.Errorf("expected age violation in message, got %v", he.Message)
	}
}

func TestHandler_CreatePatient_MalformedBody(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(`{"age":"thirty"`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()

	created, err := h.svc.Register(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ID != created.ID {
		t.Errorf("expected id %d, got %d", created.ID, p.ID)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := h.GetPatient(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
	if he.Message != "Patient not found" {
		t.Errorf("expected 'Patient not found', got %v", he.Message)
	}
}

func TestHandler_GetPatient_InvalidID(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetPatient(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}

func TestHandler_ListPatients(t *testing.T) {
	h, e := newTestHandler()

	h.svc.Register(context.Background(), validSubmission())
	sub := validSubmission()
	sub.Name = "Jane Doe"
	h.svc.Register(context.Background(), sub)

	req := httptest.NewRequest(http.MethodGet, "/patients/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	// The response is a bare array, not an envelope.
	var patients []*Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &patients); err != nil {
		t.Fatalf("expected a JSON array, got %q: %v", rec.Body.String(), err)
	}
	if len(patients) != 2 {
		t.Errorf("expected 2 patients, got %d", len(patients))
	}
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/patients/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}

func TestHandler_ListPatients_Window(t *testing.T) {
	h, e := newTestHandler()

	for i := 0; i < 5; i++ {
		h.svc.Register(context.Background(), validSubmission())
	}

	req := httptest.NewRequest(http.MethodGet, "/patients/?skip=3&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var patients []*Patient
	json.Unmarshal(rec.Body.Bytes(), &patients)
	if len(patients) != 2 {
		t.Errorf("expected 2 patients after skip=3, got %d", len(patients))
	}
}
