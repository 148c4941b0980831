package prayerkit

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestInspectTokenReadsExpiryHint(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-a",
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	got, ok := InspectToken(token)
	if !ok {
		t.Fatal("expected a hint from a JWT bearer")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

func TestInspectTokenOpaqueBearerHasNoHint(t *testing.T) {
	for _, token := range []string{"", "opaque-bearer-token", "a.b", "not..a.jwt"} {
		if _, ok := InspectToken(token); ok {
			t.Fatalf("token %q must not yield a hint", token)
		}
	}
}

func TestInspectTokenWithoutExpClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-a",
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	if _, ok := InspectToken(token); ok {
		t.Fatal("token without exp must not yield a hint")
	}
}
