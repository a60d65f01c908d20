package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/sedaily/internal/client/diskcache"
	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/dmitrijs2005/sedaily/internal/common"
)

// Podcasts lists the cached podcast summaries.
func (a *App) Podcasts(ctx context.Context) error {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	var list []models.Podcast
	err := a.cache.Load(opCtx, models.DiskKeyPodcastFolder, &list)
	if errors.Is(err, diskcache.ErrCacheMiss) || (err == nil && len(list) == 0) {
		fmt.Fprintln(a.out, "No cached podcasts")
		return nil
	}
	if err != nil {
		return err
	}

	for _, p := range list {
		if date := p.DateString(); date != "" {
			fmt.Fprintf(a.out, "%s  %s\n", date, p.Title)
		} else {
			fmt.Fprintln(a.out, p.Title)
		}
	}
	return nil
}

// Import reads a JSON array of podcasts from path and stores it as the
// podcast cache. The cache belongs to the session, so a login is required.
func (a *App) Import(ctx context.Context, path string) error {
	if !a.session.IsCurrentUserLoggedIn() {
		return common.ErrNotLoggedIn
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var list []models.Podcast
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.cache.Save(opCtx, models.DiskKeyPodcastFolder, list); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d podcasts\n", len(list))
	return nil
}
