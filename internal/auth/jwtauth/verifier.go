package jwtauth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
)

// Claims are the assertions carried by a portal identity token. Tokens are
// minted by the portal identity service; this service only verifies them.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   domain.UserRole
}

// Verifier validates HS256 tokens issued by the portal identity service.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier from JWT config.
func NewVerifier(cfg *config.JWTConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify parses and validates a token string and returns its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token missing subject: %w", domain.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", domain.ErrUnauthorized)
	}

	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if role == "" {
		role = string(domain.RoleBroker)
	}

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   domain.UserRole(role),
	}, nil
}
