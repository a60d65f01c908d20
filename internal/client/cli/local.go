package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/sedaily/internal/client/session"
	"github.com/dmitrijs2005/sedaily/internal/common"
)

// Stored prints every key held in local storage with its size.
func (a *App) Stored(ctx context.Context) error {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	entries, err := a.local.List(opCtx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Local storage is empty")
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(a.out, "%-16s %d bytes\n", k, len(entries[k]))
	}
	return nil
}

// Forget deletes a single stored key. The session user can only be removed
// through logout or reset.
func (a *App) Forget(ctx context.Context, key string) error {
	if key == session.UserKey {
		return common.ErrSessionKey
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.local.Delete(opCtx, key); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Forgot %s\n", key)
	return nil
}

// Reset logs out and then wipes local storage. The logout notification is
// sent even when the session was already empty.
func (a *App) Reset(ctx context.Context) error {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	logoutErr := a.session.Logout(opCtx)
	clearErr := a.local.Clear(opCtx)
	if err := errors.Join(logoutErr, clearErr); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Local data cleared")
	return nil
}
