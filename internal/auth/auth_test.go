package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenVerifier_Verify(t *testing.T) {
	v := NewTokenVerifier(testSecret, "artist-booking")
	reg := jwt.RegisteredClaims{Subject: "12", Issuer: "artist-booking"}

	tests := []struct {
		name    string
		claims  Claims
		isAdmin bool
	}{
		{"plain artist", Claims{RegisteredClaims: reg}, false},
		{"is_admin flag", Claims{RegisteredClaims: reg, IsAdmin: true}, true},
		{"role string", Claims{RegisteredClaims: reg, Role: "Admin"}, true},
		{"roles array", Claims{RegisteredClaims: reg, Roles: []string{"artist", "admin"}}, true},
		{"permissions array", Claims{RegisteredClaims: reg, Permissions: []string{"admin"}}, true},
		{"app metadata role", Claims{RegisteredClaims: reg, AppMetadata: appMetadata{Role: "admin"}}, true},
		{"app metadata flag", Claims{RegisteredClaims: reg, AppMetadata: appMetadata{IsAdmin: true}}, true},
		{"user metadata flag", Claims{RegisteredClaims: reg, UserMetadata: userMetadata{IsAdmin: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := v.Verify(sign(t, tt.claims, testSecret))
			require.NoError(t, err)
			assert.Equal(t, 12, p.ArtistID)
			assert.Equal(t, tt.isAdmin, p.IsAdmin)
		})
	}
}

func TestTokenVerifier_Rejects(t *testing.T) {
	v := NewTokenVerifier(testSecret, "artist-booking")

	t.Run("Failed - wrong secret", func(t *testing.T) {
		token := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "artist-booking"}}, "other")
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Failed - expired", func(t *testing.T) {
		token := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "artist-booking",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}, testSecret)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Failed - wrong issuer", func(t *testing.T) {
		token := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "someone-else"}}, testSecret)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Failed - subject is not an id", func(t *testing.T) {
		token := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc", Issuer: "artist-booking"}}, testSecret)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Success - explicit artist_id wins over subject", func(t *testing.T) {
		token := sign(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "uuid-like", Issuer: "artist-booking"},
			ArtistID:         5,
		}, testSecret)
		p, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, 5, p.ArtistID)
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := NewTokenVerifier(testSecret, "")

	r := gin.New()
	r.GET("/me", RequireAuth(v), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"artist_id": p.ArtistID})
	})
	r.GET("/admin", RequireAuth(v), RequireAdmin(RoleAuthorizer{}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	artist := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "3"}}, testSecret)
	admin := sign(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}, Role: "admin"}, testSecret)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"garbage token", "/me", "nope", http.StatusUnauthorized},
		{"artist on own route", "/me", artist, http.StatusOK},
		{"artist on admin route", "/admin", artist, http.StatusForbidden},
		{"admin on admin route", "/admin", admin, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestTokenIssuer_Issue(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		issuer := NewTokenIssuer(testSecret, "artist-booking", time.Hour)
		verifier := NewTokenVerifier(testSecret, "artist-booking")

		token, expiresAt, err := issuer.Issue(Principal{ArtistID: 7, IsAdmin: true})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

		p, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, 7, p.ArtistID)
		assert.True(t, p.IsAdmin)
	})

	t.Run("Expired", func(t *testing.T) {
		issuer := NewTokenIssuer(testSecret, "", time.Hour)
		issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := issuer.Issue(Principal{ArtistID: 7})
		require.NoError(t, err)

		_, err = NewTokenVerifier(testSecret, "").Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Failed - no secret", func(t *testing.T) {
		_, _, err := NewTokenIssuer("", "", time.Hour).Issue(Principal{ArtistID: 7})
		assert.Error(t, err)
	})
}
