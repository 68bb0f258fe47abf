// Package credentials persists the provider credentials the host UI collects:
// a bare API key for the primary engine and a key/endpoint pair for the
// secondary one. The store re-reads its backing file on every access so keys
// updated from outside take effect without a restart.
package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
)

// Secondary is the credential pair for the secondary provider.
type Secondary struct {
	APIKey     string `json:"api_key"`
	EndpointID string `json:"endpoint_id"`
}

type record struct {
	GeminiAPIKey string    `json:"gemini_api_key,omitempty"`
	Ark          Secondary `json:"ark,omitempty"`
}

// Store is a JSON-file credential store with environment fallback. A missing
// file is not an error: the environment then provides whatever it can.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("credentials: path is required")
	}
	return &Store{path: path}, nil
}

// GeminiAPIKey returns the primary provider credential, preferring the file
// over the GEMINI_API_KEY environment variable.
func (s *Store) GeminiAPIKey() string {
	rec := s.read()
	if key := strings.TrimSpace(rec.GeminiAPIKey); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// SetGeminiAPIKey persists the primary provider credential.
func (s *Store) SetGeminiAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("credentials: gemini api key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.readLocked()
	rec.GeminiAPIKey = key
	return s.writeLocked(rec)
}

// ArkCredentials returns the secondary provider pair, preferring the file
// over the ARK_API_KEY / ARK_ENDPOINT_ID environment variables. Either field
// may be empty; the adapter classifies that as a configuration error.
func (s *Store) ArkCredentials() Secondary {
	rec := s.read()
	out := Secondary{
		APIKey:     strings.TrimSpace(rec.Ark.APIKey),
		EndpointID: strings.TrimSpace(rec.Ark.EndpointID),
	}
	if out.APIKey == "" {
		out.APIKey = strings.TrimSpace(os.Getenv("ARK_API_KEY"))
	}
	if out.EndpointID == "" {
		out.EndpointID = strings.TrimSpace(os.Getenv("ARK_ENDPOINT_ID"))
	}
	return out
}

// SetArkCredentials persists the secondary provider pair. Partial pairs are
// allowed so the UI can save fields as the user types them.
func (s *Store) SetArkCredentials(creds Secondary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.readLocked()
	rec.Ark = Secondary{
		APIKey:     strings.TrimSpace(creds.APIKey),
		EndpointID: strings.TrimSpace(creds.EndpointID),
	}
	return s.writeLocked(rec)
}

func (s *Store) read() record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() record {
	var rec record
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return rec
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}
	}
	return rec
}

func (s *Store) writeLocked(rec record) error {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
