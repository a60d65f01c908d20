package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sedaily/internal/client/config"
	"github.com/dmitrijs2005/sedaily/internal/client/diskcache"
	"github.com/dmitrijs2005/sedaily/internal/client/events"
	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/dmitrijs2005/sedaily/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sedaily/internal/client/session"
	"github.com/dmitrijs2005/sedaily/internal/common"
	"github.com/dmitrijs2005/sedaily/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	out   *bytes.Buffer
	repo  *metadata.MemoryRepository
	fs    afero.Fs
	store *session.Store
	bus   *events.Bus
}

// newTestApp wires the real session store over in-memory storage.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	repo := metadata.NewMemoryRepository()
	fs := afero.NewMemMapFs()
	cache := diskcache.New(fs, "/cache")
	bus := events.NewBus()
	store := session.NewStore(repo, cache, bus, logging.Nop())
	out := &bytes.Buffer{}

	a := &App{
		log:     logging.Nop(),
		session: store,
		cache:   cache,
		local:   repo,
		bus:     bus,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
	}
	return &testApp{App: a, out: out, repo: repo, fs: fs, store: store, bus: bus}
}

func stubInputs(t *testing.T, texts []string, token string) {
	t.Helper()
	origST, origGS := getSimpleText, getSecret
	t.Cleanup(func() {
		getSimpleText = origST
		getSecret = origGS
	})

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[i]
		i++
		return v, nil
	}
	getSecret = func(string, io.Writer) ([]byte, error) { return []byte(token), nil }
}

func TestLogin_SetsAndPersistsUser(t *testing.T) {
	a := newTestApp(t, "")
	stubInputs(t, []string{"Jeff", "Meyerson", "jeff@example.com"}, " abc \n")

	require.NoError(t, a.Login(context.Background()))

	u := a.store.CurrentUser()
	assert.Equal(t, "JeffMeyerson", u.FullName())
	assert.Equal(t, "abc", u.Token)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Logged in as JeffMeyerson")

	raw, err := a.repo.Get(context.Background(), session.UserKey)
	require.NoError(t, err)
	require.NotNil(t, raw)
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	a := newTestApp(t, "")
	stubInputs(t, []string{"Jeff", "", "jeff"}, "   ")

	err := a.Login(context.Background())

	require.ErrorIs(t, err, common.ErrEmptyToken)
	assert.False(t, a.isLoggedIn())
}

func TestLogout_RequiresSession(t *testing.T) {
	a := newTestApp(t, "")
	require.ErrorIs(t, a.Logout(context.Background()), common.ErrNotLoggedIn)
}

func TestLogout_ClearsCacheAndNotifies(t *testing.T) {
	a := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))
	require.NoError(t, a.cache.Save(ctx, models.DiskKeyPodcastFolder, []models.Podcast{{Title: "x"}}))

	notified := 0
	a.bus.Subscribe(events.LoginChanged, func(context.Context, events.Event) { notified++ })

	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, 1, notified)
	exists, err := afero.DirExists(a.fs, "/cache/Podcasts")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("logged out", func(t *testing.T) {
		a := newTestApp(t, "")
		require.NoError(t, a.Status(ctx))
		assert.Equal(t, "Not logged in\n", a.out.String())
	})

	t.Run("opaque token", func(t *testing.T) {
		a := newTestApp(t, "")
		require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(
			models.WithFirstName("Ana"), models.WithUsernameOrEmail("ana"), models.WithToken("abc"))))

		require.NoError(t, a.Status(ctx))
		assert.Contains(t, a.out.String(), "Name:     Ana\n")
		assert.Contains(t, a.out.String(), "Login:    ana\n")
		assert.Contains(t, a.out.String(), "Token:    opaque")
	})

	t.Run("expired jwt", func(t *testing.T) {
		exp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "ana@example.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("k"))
		require.NoError(t, err)

		a := newTestApp(t, "")
		require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken(tok))))

		require.NoError(t, a.Status(ctx))
		assert.Contains(t, a.out.String(), "Subject:  ana@example.com")
		assert.Contains(t, a.out.String(), "Expires:  2020-01-01T00:00:00Z (expired)")
	})

	t.Run("restores persisted session", func(t *testing.T) {
		a := newTestApp(t, "")
		b, err := json.Marshal(models.NewUser(models.WithUsernameOrEmail("saved"), models.WithToken("abc")))
		require.NoError(t, err)
		require.NoError(t, a.repo.Set(ctx, session.UserKey, b))

		require.NoError(t, a.Status(ctx))
		assert.Contains(t, a.out.String(), "Login:    saved")
		assert.True(t, a.isLoggedIn())
	})
}

func TestImportAndPodcasts(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	path := filepath.Join(t.TempDir(), "podcasts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"1","title":"Kubernetes Operators","uploadDate":"2017-11-16T00:00:00Z"},
		{"id":"2","title":"Serverless"}
	]`), 0o600))

	require.ErrorIs(t, a.Import(ctx, path), common.ErrNotLoggedIn)

	require.NoError(t, a.Podcasts(ctx))
	assert.Contains(t, a.out.String(), "No cached podcasts")

	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))
	require.NoError(t, a.Import(ctx, path))
	assert.Contains(t, a.out.String(), "Imported 2 podcasts")

	a.out.Reset()
	require.NoError(t, a.Podcasts(ctx))
	assert.Equal(t, "Nov 16, 2017  Kubernetes Operators\nServerless\n", a.out.String())
}

func TestImport_BadFile(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))

	require.Error(t, a.Import(ctx, filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.ErrorContains(t, a.Import(ctx, bad), "decode")
}

func TestRoot_WelcomesBackPersistedUser(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "status\nexit\n")
	b, err := json.Marshal(models.NewUser(models.WithFirstName("Jeff"), models.WithToken("abc")))
	require.NoError(t, err)
	require.NoError(t, a.repo.Set(ctx, session.UserKey, b))

	a.Root(ctx)

	s := a.out.String()
	assert.Contains(t, s, "Welcome back, Jeff")
	assert.Contains(t, s, "sedaily (logged in)> ")
	assert.Contains(t, s, "Bye!")
}

func TestGetStatus(t *testing.T) {
	a := newTestApp(t, "")
	assert.Equal(t, "(logged out)", a.getStatus())

	require.NoError(t, a.store.SetCurrentUser(context.Background(),
		models.NewUser(models.WithUsernameOrEmail("jeff"), models.WithToken("abc"))))
	assert.Equal(t, "(jeff)", a.getStatus())
}

func TestStored_ListsKeysSorted(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	require.NoError(t, a.Stored(ctx))
	assert.Equal(t, "Local storage is empty\n", a.out.String())

	require.NoError(t, a.repo.Set(ctx, "lastSync", []byte("12345")))
	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))

	a.out.Reset()
	require.NoError(t, a.Stored(ctx))
	s := a.out.String()
	assert.Contains(t, s, "lastSync")
	assert.Contains(t, s, "5 bytes")
	assert.Less(t, strings.Index(s, "lastSync"), strings.Index(s, session.UserKey))
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, a.repo.Set(ctx, "lastSync", []byte("1")))

	require.NoError(t, a.Forget(ctx, "lastSync"))
	assert.Contains(t, a.out.String(), "Forgot lastSync")
	v, err := a.repo.Get(ctx, "lastSync")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, a.Forget(ctx, "missing"), "deleting an absent key is not an error")

	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))
	require.ErrorIs(t, a.Forget(ctx, session.UserKey), common.ErrSessionKey)
	v, err = a.repo.Get(ctx, session.UserKey)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestReset_LogsOutAndWipesStorage(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))
	require.NoError(t, a.repo.Set(ctx, "lastSync", []byte("1")))
	require.NoError(t, a.cache.Save(ctx, models.DiskKeyPodcastFolder, []models.Podcast{{Title: "x"}}))

	notified := 0
	a.bus.Subscribe(events.LoginChanged, func(context.Context, events.Event) { notified++ })

	require.NoError(t, a.Reset(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, 1, notified)
	assert.Contains(t, a.out.String(), "Local data cleared")

	all, err := a.repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	exists, err := afero.DirExists(a.fs, "/cache/Podcasts")
	require.NoError(t, err)
	assert.False(t, exists)
}

// deadlineCache records whether each call carried a deadline.
type deadlineCache struct {
	deadlines []bool
}

func (c *deadlineCache) Save(ctx context.Context, _ models.DiskKey, _ any) error {
	_, ok := ctx.Deadline()
	c.deadlines = append(c.deadlines, ok)
	return nil
}

func (c *deadlineCache) Load(ctx context.Context, _ models.DiskKey, _ any) error {
	_, ok := ctx.Deadline()
	c.deadlines = append(c.deadlines, ok)
	return diskcache.ErrCacheMiss
}

func TestPodcastCommands_UseOperationTimeout(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	cache := &deadlineCache{}
	a.cache = cache
	a.config = &config.Config{OperationTimeout: time.Second}
	require.NoError(t, a.store.SetCurrentUser(ctx, models.NewUser(models.WithToken("abc"))))

	path := filepath.Join(t.TempDir(), "podcasts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	require.NoError(t, a.Podcasts(ctx))
	require.NoError(t, a.Import(ctx, path))

	assert.Equal(t, []bool{true, true}, cache.deadlines)
}
