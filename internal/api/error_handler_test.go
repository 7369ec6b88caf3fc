package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
)

func renderError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var logs bytes.Buffer
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/api/auth/me", nil), rec)

	NewHTTPErrorHandler(zerolog.New(&logs))(err, c)
	return rec, logs.String()
}

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
		logged  bool
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token", false},
		{"session user gone", fmt.Errorf("current user: %w", domain.ErrUserNotFound), http.StatusUnauthorized, "session user no longer exists", false},
		{"unexpected", errors.New("dial tcp 10.0.0.5:5432: refused"), http.StatusInternalServerError, "Internal server error", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, logs := renderError(t, http.MethodGet, tc.err)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
			}
			if resp["error"] != tc.message {
				t.Fatalf("expected error %q, got %q", tc.message, resp["error"])
			}
			if strings.Contains(rec.Body.String(), "10.0.0.5") {
				t.Fatalf("internal detail leaked: %s", rec.Body.String())
			}
			if (logs != "") != tc.logged {
				t.Fatalf("logged=%v, want %v: %q", logs != "", tc.logged, logs)
			}
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := renderError(t, http.MethodHead, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected bare 404, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
