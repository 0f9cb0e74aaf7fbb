package gateway

import "context"

// Tier selects which configured model a request runs on.
type Tier string

const (
	// TierFast serves term lookups and translations.
	TierFast Tier = "fast"
	// TierPro serves developer lab requests.
	TierPro Tier = "pro"
)

// Schema is the subset of JSON Schema the gateway uses to describe the
// expected response. Each backend translates it to its own wire form.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
}

// Schema type names.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeArray   = "array"
)

// Request is a single structured-output call.
type Request struct {
	System         string
	Prompt         string
	Schema         *Schema
	Tier           Tier
	ThinkingBudget int
	MaxTokens      int
}

// Backend performs one request against a hosted model and returns the raw
// JSON text of the answer. Errors should already be *LookupFailure values.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
