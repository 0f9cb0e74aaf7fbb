package gateway

import (
	"os"
	"strings"
	"sync"
)

// CredentialSource supplies the API key at call time, so a key can be
// replaced while the process runs.
type CredentialSource interface {
	APIKey() (string, error)
}

// Credentials is a CredentialSource holding an optional explicit key with
// environment variables as fallback. Environment variables are read on every
// call, not at construction.
type Credentials struct {
	mu      sync.RWMutex
	key     string
	envVars []string
}

// NewCredentials creates a source with an explicit key (may be empty) and the
// environment variables to consult when it is.
func NewCredentials(key string, envVars ...string) *Credentials {
	return &Credentials{key: strings.TrimSpace(key), envVars: envVars}
}

// APIKey returns the explicit key, else the first non-empty environment
// variable, else ErrNoCredential.
func (c *Credentials) APIKey() (string, error) {
	c.mu.RLock()
	key := c.key
	c.mu.RUnlock()
	if key != "" {
		return key, nil
	}
	for _, name := range c.envVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", ErrNoCredential
}

// SetAPIKey replaces the explicit key. An empty key falls back to the
// environment again.
func (c *Credentials) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = strings.TrimSpace(key)
}
