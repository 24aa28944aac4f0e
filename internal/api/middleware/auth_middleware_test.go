package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/api/middleware"
	"github.com/shopnow/shopnow-backend/internal/auth"
	"github.com/shopnow/shopnow-backend/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret-key-123456789012345", time.Hour)
	otherTokens := auth.NewTokenService("a-completely-different-secret-k", time.Hour)
	expiredTokens := auth.NewTokenService("test-secret-key-123456789012345", -time.Minute)

	userID := uuid.New()
	email := "jane@example.com"

	validToken, _, err := tokens.Issue(userID, email)
	require.NoError(t, err)

	foreignToken, _, err := otherTokens.Issue(userID, email)
	require.NoError(t, err)

	expiredToken, _, err := expiredTokens.Issue(userID, email)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + validToken,
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "Missing Header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Wrong Scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed Header",
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage Token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Token Signed With Another Key",
			authHeader: "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired Token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			authMiddleware := middleware.NewAuthMiddleware(tokens)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				claims := middleware.ClaimsFromContext(r.Context())
				require.NotNil(t, claims)
				assert.Equal(t, userID, claims.UserID)
				assert.Equal(t, email, claims.Email)

				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(next).ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			if !tt.wantNextCalled {
				var resp response.APIResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
			}
		})
	}
}

func TestClaimsFromContextWithoutAuthentication(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

	assert.Nil(t, middleware.ClaimsFromContext(req.Context()))
}
