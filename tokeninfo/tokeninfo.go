// Package tokeninfo peeks at bearer-token claims for display purposes: the
// profile header showing who is signed in, or an expiry hint in diagnostics.
//
// The peek is strictly non-authoritative. Signatures are NOT verified — the
// backend is the only party that validates tokens, and session expiry is
// detected reactively through a 401, never by a client-side clock.
package tokeninfo

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for tokens that are not parseable JWTs. Opaque
// tokens are valid sessions; they just carry no peekable claims.
var ErrNotJWT = errors.New("tokeninfo: token is not a jwt")

// Info is the subset of claims goGuard surfaces.
type Info struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Peek decodes the token's registered claims without verifying the
// signature. Missing timestamp claims leave the zero time.
func Peek(token string) (Info, error) {
	parser := jwt.NewParser()

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Info{}, ErrNotJWT
	}

	info := Info{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
