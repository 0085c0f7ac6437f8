package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouter_Banner(t *testing.T) {
	r := SetupRouter("test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MemeZvukachBot is alive") {
		t.Errorf("banner body = %q", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestRouter_Health(t *testing.T) {
	r := SetupRouter("test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("health body = %q, want OK", w.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := SetupRouter("test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
