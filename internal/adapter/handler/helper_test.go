package handler

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/note-cleaner/errors"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleErrorAppError(t *testing.T) {
	c, rec := newErrorContext()

	if err := HandleError(zap.NewNop(), c, apperrors.ErrMissingTranscript()); err != nil {
		t.Fatalf("HandleError: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing transcript") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleErrorWrapsPlainErrorAsInternal(t *testing.T) {
	c, rec := newErrorContext()

	if err := HandleError(zap.NewNop(), c, stdErrors.New("disk on fire")); err != nil {
		t.Fatalf("HandleError: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Internal server error") || !strings.Contains(body, "disk on fire") {
		t.Errorf("body = %s", body)
	}
}
