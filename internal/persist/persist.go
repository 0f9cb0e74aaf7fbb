// Package persist mirrors AI-generated terms and favorites to durable storage
// and rehydrates them on startup. Storage problems are logged, never returned.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ajitpratap0/techlingo/internal/metrics"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/store"
)

// Fixed storage keys.
const (
	TermsKey     = "techlingo_custom_terms"
	FavoritesKey = "techlingo_favs"
)

// Sync writes the two persisted slots through a store.KV.
type Sync struct {
	kv     store.KV
	logger *slog.Logger
}

// NewSync creates a Sync over kv.
func NewSync(kv store.KV, logger *slog.Logger) *Sync {
	return &Sync{kv: kv, logger: logger}
}

// Snapshot is the rehydrated persisted state.
type Snapshot struct {
	Terms     []models.Term
	Favorites []string
}

// Load reads both slots. An absent, unreadable or malformed slot yields an
// empty result for that slot.
func (s *Sync) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Terms:     []models.Term{},
		Favorites: []string{},
	}

	var terms []models.Term
	if s.read(ctx, TermsKey, &terms) {
		snap.Terms = sanitizeTerms(terms, s.logger)
	}

	var favs []string
	if s.read(ctx, FavoritesKey, &favs) {
		for _, id := range favs {
			if id != "" {
				snap.Favorites = append(snap.Favorites, id)
			}
		}
	}

	s.logger.Debug("persisted state loaded", "terms", len(snap.Terms), "favorites", len(snap.Favorites))
	return snap
}

// SaveTerms writes the AI-generated subset of terms. Built-in terms are
// filtered out even if passed in.
func (s *Sync) SaveTerms(ctx context.Context, terms []models.Term) {
	generated := make([]models.Term, 0, len(terms))
	for _, t := range terms {
		if t.IsGenerated {
			generated = append(generated, t)
		}
	}
	s.write(ctx, TermsKey, generated)
}

// SaveFavorites writes the full favorites set.
func (s *Sync) SaveFavorites(ctx context.Context, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	s.write(ctx, FavoritesKey, ids)
}

// --- helpers ---

// read decodes key into v and reports whether v holds usable data.
func (s *Sync) read(ctx context.Context, key string, v any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			metrics.Inc(metrics.StorageReadFailures)
			s.logger.Warn("persist: reading slot failed, using empty state", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		metrics.Inc(metrics.StorageReadFailures)
		s.logger.Warn("persist: malformed slot, using empty state", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Sync) write(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		metrics.Inc(metrics.StorageWriteFailures)
		s.logger.Error("persist: encoding slot", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		metrics.Inc(metrics.StorageWriteFailures)
		s.logger.Warn("persist: writing slot failed", "key", key, "error", err)
	}
}

// sanitizeTerms keeps well-formed generated terms. An unknown category is
// reset to general rather than dropping the entry.
func sanitizeTerms(in []models.Term, logger *slog.Logger) []models.Term {
	out := make([]models.Term, 0, len(in))
	for _, t := range in {
		if t.ID == "" || models.NameKey(t.Name) == "" || !t.IsGenerated {
			logger.Debug("persist: skipping malformed stored term", "id", t.ID)
			continue
		}
		if !t.Category.IsValid() {
			t.Category = models.CategoryGeneral
		}
		out = append(out, t)
	}
	return out
}
