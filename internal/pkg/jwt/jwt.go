package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// Claims represents the JWT claims for both access and refresh tokens.
// The token_type claim distinguishes the two without an out-of-band hint.
type Claims struct {
	TokenType string   `json:"token_type"`
	Roles     []string `json:"roles,omitempty"`
	TokenID   string   `json:"token_id,omitempty"` // Unique ID for refresh tokens
	jwt.RegisteredClaims
}

// Codec signs and decodes tokens with a single process-wide HS256 secret.
// Rotating the secret invalidates all outstanding tokens.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec creates a new token codec
func NewCodec(secret, issuer string) *Codec {
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Issue generates a signed token for the subject with the given TTL.
// Roles are only meaningful on access tokens and may be nil otherwise.
func (c *Codec) Issue(subject, tokenType string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// IssueRefresh generates a refresh token carrying a unique token ID so the
// stored hash can be matched and rotated on use.
func (c *Codec) IssueRefresh(subject, tokenID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: TokenTypeRefresh,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode parses a token and verifies its structure and signature only.
// Expiry is NOT checked here; that is the validator's job (IsValid).
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// IsValid reports whether the token decodes, matches the expected type and
// has not expired. It fails closed: any decode failure returns false, never
// an error, so callers can treat validity as a plain boolean gate.
func (c *Codec) IsValid(tokenString, expectedType string) bool {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return false
	}

	if claims.TokenType != expectedType {
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	// No leeway: a token is invalid the instant now >= exp
	return time.Now().Before(claims.ExpiresAt.Time)
}

// GetExpiryTime returns the wall-clock expiry for a TTL from now
func GetExpiryTime(ttl time.Duration) time.Time {
	return time.Now().Add(ttl)
}
