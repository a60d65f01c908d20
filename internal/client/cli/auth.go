package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/dmitrijs2005/sedaily/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login prompts for the user's profile and session token and makes that user
// the active one. The token is read without echo and wiped afterwards.
func (a *App) Login(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	usernameOrEmail, err := getSimpleText(a.reader, "Username or email", a.out)
	if err != nil {
		return err
	}

	token, err := getSecret("Session token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	token = bytes.TrimSpace(token)
	if len(token) == 0 {
		return common.ErrEmptyToken
	}

	u := models.NewUser(
		models.WithFirstName(firstName),
		models.WithLastName(lastName),
		models.WithUsernameOrEmail(usernameOrEmail),
		models.WithToken(string(token)),
	)

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.session.SetCurrentUser(opCtx, u); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(u))
	return nil
}

// Logout ends the session, drops the podcast cache and notifies subscribers.
func (a *App) Logout(ctx context.Context) error {
	if !a.session.IsCurrentUserLoggedIn() {
		return common.ErrNotLoggedIn
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.session.Logout(opCtx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// displayName prefers the full name and falls back to the login.
func displayName(u models.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.UsernameOrEmail
}
