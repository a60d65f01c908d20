package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sedaily/internal/client/tokeninfo"
)

// now is a test seam for token expiry checks.
var now = time.Now

// Status prints the active user, reconciling with storage first.
func (a *App) Status(ctx context.Context) error {
	opCtx, cancel := a.withTimeout(ctx)
	u := a.session.ActiveUser(opCtx)
	cancel()

	if !u.IsLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Name:     %s\n", u.FullName())
	fmt.Fprintf(a.out, "Login:    %s\n", u.UsernameOrEmail)

	info, err := tokeninfo.Inspect(u.Token)
	if err != nil {
		fmt.Fprintln(a.out, "Token:    opaque")
		return nil
	}
	if info.Subject != "" {
		fmt.Fprintf(a.out, "Subject:  %s\n", info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Expires:  never")
	case info.Expired(now()):
		fmt.Fprintf(a.out, "Expires:  %s (expired)\n", info.ExpiresAt.Format(time.RFC3339))
	default:
		fmt.Fprintf(a.out, "Expires:  %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
