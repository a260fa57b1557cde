package security

import (
	"errors"
	"fmt"
	"social_feed/internal/common"
	"social_feed/internal/platform/config"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	TokenAuth *jwtauth.JWTAuth
	tokenExp  time.Duration
)

// Claims is what a verified bearer token says about its holder.
type Claims struct {
	Subject   string // user email
	TokenID   string
	ExpiresAt time.Time
}

func InitJWT() {
	Configure(config.AppConfig.JWTKey, config.AppConfig.JWTExp)
}

// Configure installs the HS256 signer used for issuing and verifying tokens.
func Configure(key []byte, exp time.Duration) {
	TokenAuth = jwtauth.New("HS256", key, nil)
	tokenExp = exp
}

func GenerateToken(email string) (string, error) {
	if email == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"jti": uuid.NewString(),
		"exp": now.Add(tokenExp).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature and expiry and returns the token's claims.
// Every failure is reported as common.ErrUnauthorized.
func VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}
	if token.Subject() == "" {
		return nil, fmt.Errorf("%w: sub claim is missing", common.ErrUnauthorized)
	}
	return &Claims{
		Subject:   token.Subject(),
		TokenID:   token.JwtID(),
		ExpiresAt: token.Expiration(),
	}, nil
}

// GetSubjectFromClaims extracts the user email from claims placed in the
// request context by jwtauth.Verifier.
func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}
