package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/techlingo/internal/metrics"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/store"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingKV fails every operation.
type failingKV struct{}

var errBroken = errors.New("disk on fire")

func (failingKV) Get(context.Context, string) (string, error) { return "", errBroken }
func (failingKV) Set(context.Context, string, string) error   { return errBroken }
func (failingKV) Delete(context.Context, string) error        { return errBroken }
func (failingKV) Ping(context.Context) error                  { return errBroken }
func (failingKV) Close() error                                { return nil }

func TestFavoritesRoundTrip(t *testing.T) {
	kv := store.NewMemoryKV()
	s := NewSync(kv, newTestLogger())
	ctx := context.Background()

	s.SaveFavorites(ctx, []string{"2", "5"})
	snap := NewSync(kv, newTestLogger()).Load(ctx)
	assert.ElementsMatch(t, []string{"2", "5"}, snap.Favorites)
}

func TestTermsRoundTrip_OnlyGenerated(t *testing.T) {
	kv := store.NewMemoryKV()
	s := NewSync(kv, newTestLogger())
	ctx := context.Background()

	s.SaveTerms(ctx, []models.Term{
		{ID: "prog-1", Name: "API", Category: models.CategoryProgramming},
		{ID: "ai-1", Name: "Serverless", LocalName: "بدون خادم", Category: models.CategoryCloud, IsGenerated: true},
	})

	snap := s.Load(ctx)
	require.Len(t, snap.Terms, 1)
	assert.Equal(t, "ai-1", snap.Terms[0].ID)
	assert.Equal(t, "بدون خادم", snap.Terms[0].LocalName)
	assert.Equal(t, models.CategoryCloud, snap.Terms[0].Category)
}

func TestTermsRoundTrip_EmptyAfterRemoval(t *testing.T) {
	kv := store.NewMemoryKV()
	s := NewSync(kv, newTestLogger())
	ctx := context.Background()

	s.SaveTerms(ctx, []models.Term{{ID: "ai-1", Name: "X", IsGenerated: true}})
	s.SaveTerms(ctx, nil)

	raw, err := kv.Get(ctx, TermsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
	assert.Empty(t, s.Load(ctx).Terms)
}

func TestLoad_AbsentKeys(t *testing.T) {
	snap := NewSync(store.NewMemoryKV(), newTestLogger()).Load(context.Background())
	assert.NotNil(t, snap.Terms)
	assert.NotNil(t, snap.Favorites)
	assert.Empty(t, snap.Terms)
	assert.Empty(t, snap.Favorites)
}

func TestLoad_MalformedJSON(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, TermsKey, "{not json"))
	require.NoError(t, kv.Set(ctx, FavoritesKey, `{"a":1}`))

	before := metrics.StorageReadFailures.Value()
	snap := NewSync(kv, newTestLogger()).Load(ctx)
	assert.Empty(t, snap.Terms)
	assert.Empty(t, snap.Favorites)
	assert.Equal(t, before+2, metrics.StorageReadFailures.Value())
}

func TestLoad_SanitizesTerms(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, TermsKey, `[
		{"id":"","name":"NoID","is_generated":true},
		{"id":"ai-2","name":"  ","is_generated":true},
		{"id":"ai-3","name":"Builtin","is_generated":false},
		{"id":"ai-4","name":"Edge","category":"quantum","is_generated":true}
	]`))
	require.NoError(t, kv.Set(ctx, FavoritesKey, `["", "ai-4"]`))

	snap := NewSync(kv, newTestLogger()).Load(ctx)
	require.Len(t, snap.Terms, 1)
	assert.Equal(t, "ai-4", snap.Terms[0].ID)
	assert.Equal(t, models.CategoryGeneral, snap.Terms[0].Category)
	assert.Equal(t, []string{"ai-4"}, snap.Favorites)
}

func TestStorageFailures_AreSwallowed(t *testing.T) {
	s := NewSync(failingKV{}, newTestLogger())
	ctx := context.Background()

	before := metrics.StorageWriteFailures.Value()
	assert.NotPanics(t, func() {
		s.SaveFavorites(ctx, []string{"1"})
		s.SaveTerms(ctx, []models.Term{{ID: "ai-1", Name: "X", IsGenerated: true}})
	})
	assert.Equal(t, before+2, metrics.StorageWriteFailures.Value())

	snap := s.Load(ctx)
	assert.Empty(t, snap.Terms)
	assert.Empty(t, snap.Favorites)
}

func TestSaveFavorites_NilWritesEmptyArray(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	NewSync(kv, newTestLogger()).SaveFavorites(ctx, nil)
	raw, err := kv.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
