package models

import "strings"

// Category partitions dictionary terms. The set is fixed; labels returned by
// the AI service are mapped onto it, never added to it.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryProgramming Category = "programming"
	CategoryHardware    Category = "hardware"
	CategoryAI          Category = "ai"
	CategoryNetworking  Category = "networking"
	CategoryCloud       Category = "cloud"
)

// ValidCategories is the set of all valid categories in display order.
var ValidCategories = []Category{
	CategoryGeneral,
	CategoryProgramming,
	CategoryHardware,
	CategoryAI,
	CategoryNetworking,
	CategoryCloud,
}

var categoryLabels = map[Category]string{
	CategoryGeneral:     "عام",
	CategoryProgramming: "برمجة",
	CategoryHardware:    "عتاد",
	CategoryAI:          "ذكاء اصطناعي",
	CategoryNetworking:  "شبكات",
	CategoryCloud:       "سحابة",
}

var categoryNames = map[Category]string{
	CategoryGeneral:     "General",
	CategoryProgramming: "Programming",
	CategoryHardware:    "Hardware",
	CategoryAI:          "AI",
	CategoryNetworking:  "Networking",
	CategoryCloud:       "Cloud",
}

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Label returns the Arabic display label.
func (c Category) Label() string { return categoryLabels[c] }

// DisplayName returns the English display name.
func (c Category) DisplayName() string { return categoryNames[c] }

// Term is a single dictionary entry.
type Term struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	LocalName   string   `json:"local_name"`
	Definition  string   `json:"definition"`
	Example     string   `json:"example"`
	Category    Category `json:"category"`
	IsGenerated bool     `json:"is_generated"`
}

// NameKey is the normalized form used for case-insensitive name comparison.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Translation is the English rendering of a term's Arabic definition and example.
type Translation struct {
	EnDefinition string `json:"en_definition"`
	EnExample    string `json:"en_example"`
}

// DictionaryStats holds summary counts about the term store.
type DictionaryStats struct {
	TotalTerms     int            `json:"total_terms"`
	GeneratedTerms int            `json:"generated_terms"`
	Favorites      int            `json:"favorites"`
	ByCategory     map[string]int `json:"by_category"`
}
