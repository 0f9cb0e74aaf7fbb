// Package dictionary wires the term store, favorites, search pipeline, AI
// gateway and persistence into the operations every surface exposes.
package dictionary

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ajitpratap0/techlingo/internal/favorites"
	"github.com/ajitpratap0/techlingo/internal/gateway"
	"github.com/ajitpratap0/techlingo/internal/metrics"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/persist"
	"github.com/ajitpratap0/techlingo/internal/search"
	"github.com/ajitpratap0/techlingo/internal/seed"
	"github.com/ajitpratap0/techlingo/internal/terms"
)

// Sentinels re-exported for callers that only import this package.
var (
	ErrNotFound   = terms.ErrNotFound
	ErrImmutable  = terms.ErrImmutable
	ErrEmptyQuery = gateway.ErrEmptyQuery
)

// Options tunes Open.
type Options struct {
	// Seed replaces the built-in term list. Nil means seed.Terms().
	Seed     []models.Term
	Pipeline *search.Pipeline
}

// Service is the dictionary. It is safe for concurrent use.
type Service struct {
	terms    *terms.Store
	favs     *favorites.Set
	pipeline *search.Pipeline
	gw       gateway.Gateway
	ps       *persist.Sync
	logger   *slog.Logger

	// saveMu orders write-through so a newer snapshot is never overwritten
	// by an older one.
	saveMu sync.Mutex
}

// Open builds the dictionary from the seed terms followed by the persisted
// generated terms, and restores favorites that still name a known term.
func Open(ctx context.Context, gw gateway.Gateway, ps *persist.Sync, logger *slog.Logger, opts Options) *Service {
	if opts.Seed == nil {
		opts.Seed = seed.Terms()
	}
	if opts.Pipeline == nil {
		opts.Pipeline = search.DefaultPipeline
	}

	snap := ps.Load(ctx)
	initial := make([]models.Term, 0, len(opts.Seed)+len(snap.Terms))
	initial = append(initial, opts.Seed...)
	initial = append(initial, snap.Terms...)
	store := terms.New(initial)

	favIDs := make([]string, 0, len(snap.Favorites))
	for _, id := range snap.Favorites {
		if _, err := store.Get(id); err != nil {
			logger.Debug("dropping favorite for unknown term", "id", id)
			continue
		}
		favIDs = append(favIDs, id)
	}

	logger.Info("dictionary opened",
		"terms", store.Len(),
		"generated", len(snap.Terms),
		"favorites", len(favIDs),
	)

	return &Service{
		terms:    store,
		favs:     favorites.New(favIDs),
		pipeline: opts.Pipeline,
		gw:       gw,
		ps:       ps,
		logger:   logger,
	}
}

// Search returns the terms matching q, favorites first.
func (s *Service) Search(q search.Query) []models.Term {
	metrics.Inc(metrics.SearchTotal)
	return s.pipeline.Filter(s.terms.All(), q, s.favs)
}

// Get returns a single term.
func (s *Service) Get(id string) (models.Term, error) {
	return s.terms.Get(id)
}

// IsFavorite reports whether id is a favorite.
func (s *Service) IsFavorite(id string) bool {
	return s.favs.Contains(id)
}

// Generated returns the AI-generated terms in store order.
func (s *Service) Generated() []models.Term {
	return s.terms.Generated()
}

// Lookup resolves query to a term. A term already in the dictionary under
// the same name is returned without calling the gateway. Otherwise the
// gateway result is merged and persisted; added reports whether the store
// grew. On failure the dictionary is unchanged.
func (s *Service) Lookup(ctx context.Context, query string) (term models.Term, added bool, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Term{}, false, ErrEmptyQuery
	}
	metrics.Inc(metrics.LookupTotal)

	if t, ok := s.terms.FindByName(query); ok {
		metrics.Inc(metrics.LookupLocalHits)
		return t, false, nil
	}

	fresh, err := s.gw.LookupTerm(ctx, query)
	if err != nil {
		return models.Term{}, false, err
	}

	stored, added := s.terms.InsertIfAbsent(fresh)
	if !added {
		// Another lookup for the same name resolved first.
		return stored, false, nil
	}
	metrics.Inc(metrics.TermsAdded)
	s.logger.Info("term added", "id", stored.ID, "name", stored.Name, "category", stored.Category)
	s.saveTerms(ctx)
	return stored, true, nil
}

// ToggleFavorite flips the favorite state of id and returns the new state.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if _, err := s.terms.Get(id); err != nil {
		return false, err
	}
	metrics.Inc(metrics.FavoriteToggles)
	on := s.favs.Toggle(id)
	s.saveFavorites(ctx)
	return on, nil
}

// Remove deletes a generated term and clears its favorite mark.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.terms.Remove(id); err != nil {
		return err
	}
	s.saveTerms(ctx)
	if s.favs.Remove(id) {
		s.saveFavorites(ctx)
	}
	s.logger.Info("term removed", "id", id)
	return nil
}

// Translate renders the definition and example of term id in English.
func (s *Service) Translate(ctx context.Context, id string) (models.Translation, error) {
	t, err := s.terms.Get(id)
	if err != nil {
		return models.Translation{}, err
	}
	metrics.Inc(metrics.TranslateTotal)
	return s.gw.Translate(ctx, t.Name, t.Definition, t.Example)
}

// ProcessCode passes a developer lab request to the gateway.
func (s *Service) ProcessCode(ctx context.Context, req models.CodeRequest) (models.CodeArtifact, error) {
	metrics.Inc(metrics.CodeTotal)
	return s.gw.ProcessCode(ctx, req)
}

// ImportResult summarizes an Import.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Import merges externally supplied terms as generated terms. Entries
// without a name or definition, or colliding with a known term, are skipped.
func (s *Service) Import(ctx context.Context, in []models.Term) ImportResult {
	var res ImportResult
	for _, t := range in {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" || strings.TrimSpace(t.Definition) == "" {
			res.Skipped++
			continue
		}
		if t.ID == "" {
			t.ID = gateway.GeneratedIDPrefix + uuid.NewString()
		}
		if !t.Category.IsValid() {
			t.Category = models.CategoryGeneral
		}
		t.IsGenerated = true
		if _, added := s.terms.InsertIfAbsent(t); !added {
			res.Skipped++
			continue
		}
		res.Added++
	}
	if res.Added > 0 {
		metrics.TermsAdded.Add(int64(res.Added))
		s.saveTerms(ctx)
	}
	return res
}

// Stats summarizes the dictionary.
func (s *Service) Stats() models.DictionaryStats {
	all := s.terms.All()
	st := models.DictionaryStats{
		TotalTerms: len(all),
		Favorites:  s.favs.Len(),
		ByCategory: make(map[string]int, len(models.ValidCategories)),
	}
	for _, c := range models.ValidCategories {
		st.ByCategory[string(c)] = 0
	}
	for _, t := range all {
		if t.IsGenerated {
			st.GeneratedTerms++
		}
		st.ByCategory[string(t.Category)]++
	}
	return st
}

func (s *Service) saveTerms(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.ps.SaveTerms(ctx, s.terms.Generated())
}

func (s *Service) saveFavorites(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.ps.SaveFavorites(ctx, s.favs.IDs())
}
