package classifier

import (
	"log/slog"
	"strings"

	"github.com/ajitpratap0/techlingo/internal/models"
)

// Classifier maps a free-text category label onto the fixed category set.
type Classifier interface {
	Classify(label string) models.Category
}

// LabelClassifier resolves labels through an explicit allow-list. Labels it
// does not know fall back to models.CategoryGeneral.
type LabelClassifier struct {
	logger *slog.Logger
}

// NewClassifier creates a new allow-list classifier.
func NewClassifier(logger *slog.Logger) *LabelClassifier {
	return &LabelClassifier{logger: logger}
}

// allowList holds every accepted spelling, normalized by normalize.
var allowList = map[string]models.Category{}

// aliases are extra spellings the AI service is known to return.
var aliases = map[models.Category][]string{
	models.CategoryGeneral:     {"عامة", "تقنية عامة", "أمن", "أمن المعلومات", "security", "cybersecurity"},
	models.CategoryProgramming: {"البرمجة", "programming & dev", "development", "software", "برمجيات"},
	models.CategoryHardware:    {"العتاد", "hardware", "أجهزة"},
	models.CategoryAI:          {"الذكاء الاصطناعي", "artificial intelligence", "machine learning", "ai & data science"},
	models.CategoryNetworking:  {"الشبكات", "network", "networks", "شبكة"},
	models.CategoryCloud:       {"السحابة", "الحوسبة السحابية", "cloud computing"},
}

func init() {
	for _, c := range models.ValidCategories {
		allowList[normalize(string(c))] = c
		allowList[normalize(c.Label())] = c
		allowList[normalize(c.DisplayName())] = c
		for _, a := range aliases[c] {
			allowList[normalize(a)] = c
		}
	}
}

// Classify returns the category for label, or models.CategoryGeneral when the
// label is not on the allow-list.
func (c *LabelClassifier) Classify(label string) models.Category {
	if cat, ok := Lookup(label); ok {
		return cat
	}
	c.logger.Debug("unmapped category label, using general", "label", truncate(label, 60))
	return models.CategoryGeneral
}

// Lookup reports the category for label and whether it is on the allow-list.
func Lookup(label string) (models.Category, bool) {
	cat, ok := allowList[normalize(label)]
	return cat, ok
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return s
}
