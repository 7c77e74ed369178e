package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects which secret and lifetime a token is signed with.
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// Claims is the signed payload carried by both token kinds. TokenID
// makes every issued token unique even inside the same second, which
// the byte-for-byte rotation comparison relies on.
type Claims struct {
	Subject   uint             `json:"sub"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	TokenID   string           `json:"jti,omitempty"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
	NotBefore *jwt.NumericDate `json:"nbf,omitempty"`
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return c.IssuedAt, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error)      { return c.NotBefore, nil }
func (c *Claims) GetIssuer() (string, error)                   { return "", nil }
func (c *Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }
func (c *Claims) GetSubject() (string, error) {
	return strconv.FormatUint(uint64(c.Subject), 10), nil
}

// TokenCodec signs and verifies tokens. Access and Refresh each get an
// independent secret and lifetime, fixed at construction.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec fails when either secret is empty; a missing secret is a
// startup configuration error, never a per-request condition.
func NewTokenCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	if accessSecret == "" {
		return nil, errors.New("access token secret key required")
	}
	if refreshSecret == "" {
		return nil, errors.New("refresh token secret key required")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (c *TokenCodec) secret(kind TokenKind) []byte {
	if kind == RefreshToken {
		return c.refreshSecret
	}
	return c.accessSecret
}

// TTL returns the configured lifetime for kind. The HTTP layer uses the
// refresh TTL as the cookie max-age.
func (c *TokenCodec) TTL(kind TokenKind) time.Duration {
	if kind == RefreshToken {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token of the given kind with iat = now and
// exp = now + TTL(kind).
func (c *TokenCodec) Issue(sub uint, email, name string, kind TokenKind) (string, error) {
	now := time.Now()
	claims := &Claims{
		Subject:   sub,
		Email:     email,
		Name:      name,
		TokenID:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL(kind))),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(kind))
}

// Verify checks signature, expiry, not-before and issued-at against the
// kind's secret. On ErrTokenExpired the decoded claims are still
// returned so sign-out can recover the subject from a stale token.
func (c *TokenCodec) Verify(token string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return c.secret(kind), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuedAt())
	if err != nil {
		switch {
		// a bad signature or shape wins over any claim-level failure
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return claims, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return nil, ErrTokenIssuedAtInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
