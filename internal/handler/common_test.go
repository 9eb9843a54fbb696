package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"artist-booking/internal/auth"
	"artist-booking/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

var InvalidJSON = `{"invalid": json}`

func testMiddleware() handler.Middleware {
	return handler.NewMiddleware(auth.NewTokenVerifier(testSecret, ""), auth.RoleAuthorizer{})
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func token(t *testing.T, artistID int, admin bool) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ArtistID: artistID,
		IsAdmin:  admin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	var body []byte
	if s, ok := data.(string); ok {
		body = []byte(s)
	} else if data != nil {
		body, _ = json.Marshal(data)
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authed(req *http.Request, bearer string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+bearer)
	return req
}

func decode(t *testing.T, body *bytes.Buffer, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Bytes(), v))
}
