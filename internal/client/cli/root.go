package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	u := a.session.CurrentUser()
	if !u.IsLoggedIn() {
		return "(logged out)"
	}
	if u.UsernameOrEmail != "" {
		return fmt.Sprintf("(%s)", u.UsernameOrEmail)
	}
	return "(logged in)"
}

// Root restores the active user and runs the REPL on a.reader.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the SE Daily CLI (type 'help' for commands)")

	opCtx, cancel := a.withTimeout(ctx)
	u := a.session.ActiveUser(opCtx)
	cancel()

	if u.IsLoggedIn() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(u))
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
