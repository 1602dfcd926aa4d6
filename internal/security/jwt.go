package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// ErrInvalidToken is returned for any token that does not verify.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the access token payload. The subject is the user id.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID string
	Role   model.Role
}

// TokenVerifier resolves bearer tokens to identities.
type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

// JWTVerifier verifies HS256 access tokens issued by the auth service.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier creates a JWTVerifier for the shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses the token and returns the caller's identity.
func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return &Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// Sign issues a token for the identity. Used by tests and local tooling.
func (v *JWTVerifier) Sign(id Identity, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = id.UserID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: id.Role, RegisteredClaims: claims})
	return token.SignedString(v.secret)
}

var _ TokenVerifier = (*JWTVerifier)(nil)
