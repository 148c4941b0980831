package prayerkit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InspectToken extracts the expiry claim from a bearer token when the token
// happens to be a JWT. Purely diagnostic: the claim is read without
// signature verification and is only used for an expiry hint in logs. The
// token itself remains trusted until the server answers 401; there is no
// local expiry enforcement and no refresh flow in this protocol.
func InspectToken(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
