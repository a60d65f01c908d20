// Package tokeninfo reads display details out of a session token.
//
// Tokens are not verified here; the client has no signing key and only uses
// the claims to describe the session to the user.
package tokeninfo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT reports a token that is not a three-part JWT.
var ErrNotJWT = errors.New("token is not a JWT")

// Info holds the registered claims shown by the status command.
type Info struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// Inspect decodes the registered claims of a JWT without checking its
// signature. Opaque tokens yield ErrNotJWT.
func Inspect(token string) (Info, error) {
	if strings.Count(token, ".") != 2 {
		return Info{}, ErrNotJWT
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	info := Info{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return info, nil
}
