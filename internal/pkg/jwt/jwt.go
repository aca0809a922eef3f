package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity provider and
// mints the short-lived tokens used for SSE connections, where browsers
// cannot attach an Authorization header.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateSSEToken(employeeID string, isAdmin bool) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, isAdmin bool, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateSSEToken generates a short-lived token for SSE connections.
func (j *JWTService) GenerateSSEToken(employeeID string, isAdmin bool) (token string, expiresIn int, err error) {
	expiresIn = 300 // 5 minutes in seconds
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"is_admin":    isAdmin,
		"type":        "sse",
		"exp":         expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns its subject.
func (j *JWTService) ValidateSSEToken(tokenString string) (employeeID string, isAdmin bool, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", false, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", false, jwt.ErrInvalidJWT()
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return "", false, jwt.ErrInvalidJWT()
	}
	employeeID, ok = idVal.(string)
	if !ok || employeeID == "" {
		return "", false, jwt.ErrInvalidJWT()
	}

	if adminVal, ok := token.Get("is_admin"); ok {
		isAdmin, _ = adminVal.(bool)
	}
	return employeeID, isAdmin, nil
}
