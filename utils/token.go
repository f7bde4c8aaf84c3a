package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenExpiry extracts the "exp" claim from an upstream-issued JWT without
// verifying its signature. The gateway is a client of the safari API and does
// not hold the signing key; the expiry is only used to skip calls that would
// fail anyway.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.Parser{}
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("unexpected claims type")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token does not contain a valid 'exp' claim")
	}
	return time.Unix(int64(exp), 0), nil
}

// TokenExpired reports whether the given access token is already past its
// expiry. Tokens that cannot be parsed are treated as expired.
func TokenExpired(tokenString string) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return time.Now().After(exp)
}
