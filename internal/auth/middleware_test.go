package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func request(t *testing.T, h http.Handler, header, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIKey_ModeNone_PassThrough(t *testing.T) {
	h := APIKeyMiddleware("none", "x-api-key", "secret", okHandler())
	if rr := request(t, h, "", ""); rr.Code != http.StatusOK {
		t.Errorf("mode none: got %d, want 200", rr.Code)
	}
}

func TestAPIKey_EmptyKey_PassThrough(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "", okHandler())
	if rr := request(t, h, "", ""); rr.Code != http.StatusOK {
		t.Errorf("empty key: got %d, want 200", rr.Code)
	}
}

func TestAPIKey_MissingKey_Unauthorized(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "secret", okHandler())
	if rr := request(t, h, "", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("missing key: got %d, want 401", rr.Code)
	}
}

func TestAPIKey_WrongKey_Unauthorized(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "secret", okHandler())
	if rr := request(t, h, "x-api-key", "wrong"); rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: got %d, want 401", rr.Code)
	}
}

func TestAPIKey_CorrectKey_Allowed(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "secret", okHandler())
	if rr := request(t, h, "x-api-key", "secret"); rr.Code != http.StatusOK {
		t.Errorf("correct key: got %d, want 200", rr.Code)
	}
}
