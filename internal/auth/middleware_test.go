package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuth(t *testing.T) {
	tokens := newTestTokenManager()

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("RequireAuth did not set user id in context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if userID != "user-123" {
			t.Errorf("Ctx userID = %s, want user-123", userID)
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireAuth(tokens)(nextHandler)

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Want 401, got %d", rec.Code)
		}
	})

	t.Run("Invalid Header Format", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "InvalidFormat")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Want 401, got %d", rec.Code)
		}
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Want 401, got %d", rec.Code)
		}
	})

	t.Run("Refresh Token Rejected As Bearer", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken("user-123")
		if err != nil {
			t.Fatalf("GenerateRefreshToken: %v", err)
		}
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Want 401, got %d", rec.Code)
		}
	})

	t.Run("Valid Token", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken("user-123")
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Want 200, got %d", rec.Code)
		}
	})
}
