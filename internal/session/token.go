package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PeekExpiry extracts the exp claim from a bearer token without verifying
// its signature. The client never trusts the claim for authorization - the
// server's verify endpoint stays authoritative - this only feeds display
// surfaces such as whoami. Opaque (non-JWT) tokens return ok=false.
func PeekExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
