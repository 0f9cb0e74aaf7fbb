// Package search derives the visible term list from the store, the current
// query and the favorites set.
package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/techlingo/internal/models"
)

// AllLabel is the Arabic label of the "all categories" selector.
const AllLabel = "الكل"

// Favorites reports whether a term ID is marked favorite.
type Favorites interface {
	Contains(id string) bool
}

// Query is the transient search state. An empty Category selects all
// categories.
type Query struct {
	Text     string          `json:"text"`
	Category models.Category `json:"category,omitempty"`
}

// Pipeline filters and orders terms. It holds no state besides the collation
// language, so one Pipeline may be shared.
type Pipeline struct {
	tag language.Tag
}

// NewPipeline creates a pipeline sorting names with the collation rules of tag.
func NewPipeline(tag language.Tag) *Pipeline {
	return &Pipeline{tag: tag}
}

// DefaultPipeline sorts with English collation.
var DefaultPipeline = NewPipeline(language.English)

// Filter is DefaultPipeline.Filter.
func Filter(terms []models.Term, q Query, favs Favorites) []models.Term {
	return DefaultPipeline.Filter(terms, q, favs)
}

// Filter retains the terms matching q and orders them favorites first, then
// by name. The input slice is not modified.
func (p *Pipeline) Filter(terms []models.Term, q Query, favs Favorites) []models.Term {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]models.Term, 0, len(terms))
	for _, t := range terms {
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if needle != "" && !matches(t, needle) {
			continue
		}
		out = append(out, t)
	}

	fav := make(map[string]bool, len(out))
	if favs != nil {
		for _, t := range out {
			if favs.Contains(t.ID) {
				fav[t.ID] = true
			}
		}
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(p.tag)
	slices.SortStableFunc(out, func(a, b models.Term) int {
		fa, fb := fav[a.ID], fav[b.ID]
		switch {
		case fa && !fb:
			return -1
		case !fa && fb:
			return 1
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

func matches(t models.Term, needle string) bool {
	return strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.LocalName), needle)
}

// ParseCategory parses a category selector. Empty input, "all" and the Arabic
// "all" label select every category and return "". Otherwise the input must
// be a category identifier, English name or Arabic label.
func ParseCategory(s string) (models.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") || s == AllLabel {
		return "", nil
	}
	for _, c := range models.ValidCategories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.DisplayName()) || s == c.Label() {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
