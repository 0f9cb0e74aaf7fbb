package models

// DevMode selects what the developer lab does with a code prompt.
type DevMode string

const (
	ModeGenerate DevMode = "generate"
	ModeFix      DevMode = "fix"
	ModeOptimize DevMode = "optimize"
	ModeReview   DevMode = "review"
	ModeEvolve   DevMode = "evolve"
)

// ValidDevModes is the set of all valid developer lab modes.
var ValidDevModes = []DevMode{
	ModeGenerate,
	ModeFix,
	ModeOptimize,
	ModeReview,
	ModeEvolve,
}

// IsValid returns true if the mode is recognized.
func (m DevMode) IsValid() bool {
	for _, v := range ValidDevModes {
		if m == v {
			return true
		}
	}
	return false
}

// FeedbackKind tags a single review feedback item.
type FeedbackKind string

const (
	FeedbackSecurity    FeedbackKind = "security"
	FeedbackPerformance FeedbackKind = "performance"
	FeedbackStyle       FeedbackKind = "style"
)

// ValidFeedbackKinds is the set of all valid review feedback kinds.
var ValidFeedbackKinds = []FeedbackKind{
	FeedbackSecurity,
	FeedbackPerformance,
	FeedbackStyle,
}

// IsValid returns true if the feedback kind is recognized.
func (k FeedbackKind) IsValid() bool {
	for _, v := range ValidFeedbackKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Evolution holds the three staged variants produced in evolve mode.
type Evolution struct {
	Basic      string `json:"basic"`
	Optimized  string `json:"optimized"`
	Enterprise string `json:"enterprise"`
}

// ReviewFeedback is one discrete finding produced in review mode.
type ReviewFeedback struct {
	Line    int          `json:"line"`
	Comment string       `json:"comment"`
	Type    FeedbackKind `json:"type"`
}

// CodeArtifact is the result of a developer lab request.
type CodeArtifact struct {
	Code            string           `json:"code"`
	Explanation     string           `json:"explanation"`
	DetectedErrors  string           `json:"detected_errors,omitempty"`
	Improvements    []string         `json:"improvements,omitempty"`
	Evolution       *Evolution       `json:"evolution,omitempty"`
	ReviewFeedbacks []ReviewFeedback `json:"review_feedbacks,omitempty"`
}

// CodeRequest is the input of a developer lab request.
type CodeRequest struct {
	Prompt    string  `json:"prompt"`
	Mode      DevMode `json:"mode"`
	Language  string  `json:"language"`
	Framework string  `json:"framework,omitempty"`
}
