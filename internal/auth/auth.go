// Package auth issues bearer tokens at login and resolves them into a Principal
// once, at the HTTP boundary. Services only ever see the artist id and admin flag.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated caller.
type Principal struct {
	ArtistID int
	IsAdmin  bool
	Role     string
}

type Authorizer interface {
	IsAdmin(p Principal) bool
}

// RoleAuthorizer grants admin to the admin flag or the "admin" role.
type RoleAuthorizer struct{}

func (RoleAuthorizer) IsAdmin(p Principal) bool {
	return p.IsAdmin || strings.EqualFold(p.Role, "admin")
}

type appMetadata struct {
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

type userMetadata struct {
	IsAdmin bool `json:"is_admin"`
}

// Claims covers every admin shape issued tokens have carried.
type Claims struct {
	jwt.RegisteredClaims

	ArtistID     int          `json:"artist_id,omitempty"`
	IsAdmin      bool         `json:"is_admin,omitempty"`
	Role         string       `json:"role,omitempty"`
	Roles        []string     `json:"roles,omitempty"`
	Permissions  []string     `json:"permissions,omitempty"`
	AppMetadata  appMetadata  `json:"app_metadata,omitempty"`
	UserMetadata userMetadata `json:"user_metadata,omitempty"`
}

// Principal collapses the claim shapes into one caller description.
func (c *Claims) Principal() (Principal, error) {
	id := c.ArtistID
	if id == 0 {
		n, err := strconv.Atoi(c.Subject)
		if err != nil || n <= 0 {
			return Principal{}, fmt.Errorf("%w: subject is not an artist id", ErrInvalidToken)
		}
		id = n
	}

	role := c.Role
	if role == "" {
		role = c.AppMetadata.Role
	}

	admin := c.IsAdmin || c.AppMetadata.IsAdmin || c.UserMetadata.IsAdmin ||
		strings.EqualFold(role, "admin") ||
		containsFold(c.Roles, "admin") ||
		containsFold(c.Permissions, "admin")

	return Principal{ArtistID: id, IsAdmin: admin, Role: role}, nil
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// TokenVerifier checks HS256 bearer tokens.
type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *TokenVerifier) Verify(tokenString string) (Principal, error) {
	if len(v.secret) == 0 {
		return Principal{}, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	return claims.Principal()
}

// TokenIssuer signs HS256 tokens that TokenVerifier accepts.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for p and its expiry.
func (i *TokenIssuer) Issue(p Principal) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("no signing secret configured")
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(p.ArtistID),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		ArtistID: p.ArtistID,
		IsAdmin:  p.IsAdmin,
		Role:     p.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
