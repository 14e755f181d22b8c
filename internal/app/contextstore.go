package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zalando/go-keyring"
)

// Credentials holds the secret material for a repository context. Exactly one
// of the credential shapes is set, selected by Type.
type Credentials struct {
	Type string `json:"type"` // "basic", "bearer" or "apiKey"

	// Basic auth.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// Bearer token or API key value.
	Token string `json:"token,omitempty"`

	// Header carrying the API key; defaults to X-API-Key when empty.
	HeaderName string `json:"headerName,omitempty"`
}

// Credential type discriminators.
const (
	CredentialBasic  = "basic"
	CredentialBearer = "bearer"
	CredentialAPIKey = "apiKey"
)

// ContextConfig holds the non-secret fields of a named context.
// Persisted as JSON in ~/.config/aasview/contexts/<name>.json.
type ContextConfig struct {
	RepositoryURL string            `json:"repositoryUrl,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Language      string            `json:"language,omitempty"`
	Metadata      map[string]any    `json:"metadata,omitempty"`
}

// RepositoryContext is a fully assembled context: config file plus keychain.
type RepositoryContext struct {
	RepositoryURL string
	Credentials   *Credentials
	Headers       map[string]string
	Language      string
	Metadata      map[string]any
}

// ContextSummary is a compact representation for listing contexts.
type ContextSummary struct {
	Name           string `json:"name"`
	RepositoryURL  string `json:"repositoryUrl,omitempty"`
	HasCredentials bool   `json:"hasCredentials"`
	HeaderCount    int    `json:"headerCount,omitempty"`
	LoadError      string `json:"loadError,omitempty"`
}

// contextsDirFunc resolves the contexts directory. Tests point it at a
// temp directory.
var contextsDirFunc = func() (string, error) {
	base, err := GlobalConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, ContextsDir), nil
}

func contextConfigPath(name string) (string, error) {
	dir, err := contextsDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// LoadContextConfig reads the non-secret half of a named context. A
// missing file yields an empty config, not an error, so `context set`
// can create contexts on first use.
func LoadContextConfig(name string) (ContextConfig, error) {
	var cfg ContextConfig
	path, err := contextConfigPath(name)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("reading context config %q: %w", name, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing context config %q: %w", name, err)
	}
	return cfg, nil
}

// SaveContextConfig writes the non-secret half of a named context.
func SaveContextConfig(name string, cfg ContextConfig) error {
	dir, err := contextsDirFunc()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating contexts directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling context config: %w", err)
	}
	return AtomicWriteFile(filepath.Join(dir, name+".json"), data, FilePerm)
}

// LoadContextCredentials reads the secret half from the OS keychain.
// No stored credentials yields nil, not an error.
func LoadContextCredentials(name string) (*Credentials, error) {
	secret, err := keyring.Get(KeychainService, name)
	if err == keyring.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading keychain for context %q: %w", name, err)
	}
	var cred Credentials
	if err := json.Unmarshal([]byte(secret), &cred); err != nil {
		return nil, fmt.Errorf("parsing keychain credentials for context %q: %w", name, err)
	}
	return &cred, nil
}

// SaveContextCredentials stores credentials in the OS keychain as JSON.
// A nil credential clears the entry.
func SaveContextCredentials(name string, cred *Credentials) error {
	if cred == nil {
		return DeleteContextCredentials(name)
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := keyring.Set(KeychainService, name, string(data)); err != nil {
		return fmt.Errorf("writing keychain for context %q: %w", name, err)
	}
	return nil
}

// DeleteContextCredentials removes the keychain entry, tolerating absence.
func DeleteContextCredentials(name string) error {
	if err := keyring.Delete(KeychainService, name); err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("deleting keychain for context %q: %w", name, err)
	}
	return nil
}

// LoadContext assembles both halves of a named context.
func LoadContext(name string) (RepositoryContext, error) {
	cfg, err := LoadContextConfig(name)
	if err != nil {
		return RepositoryContext{}, err
	}
	cred, err := LoadContextCredentials(name)
	if err != nil {
		return RepositoryContext{}, err
	}
	return RepositoryContext{
		RepositoryURL: cfg.RepositoryURL,
		Credentials:   cred,
		Headers:       cfg.Headers,
		Language:      cfg.Language,
		Metadata:      cfg.Metadata,
	}, nil
}

// DeleteContext removes both halves of a named context.
func DeleteContext(name string) error {
	path, err := contextConfigPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing context config %q: %w", name, err)
	}
	return DeleteContextCredentials(name)
}

// ContextExists reports whether either half of a named context is stored.
func ContextExists(name string) bool {
	if path, err := contextConfigPath(name); err == nil {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	_, err := keyring.Get(KeychainService, name)
	return err == nil
}

// ListContexts summarizes every context with a config file, sorted by name.
func ListContexts() ([]ContextSummary, error) {
	dir, err := contextsDirFunc()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading contexts directory: %w", err)
	}

	var summaries []ContextSummary
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() {
			continue
		}
		cfg, err := LoadContextConfig(name)
		if err != nil {
			summaries = append(summaries, ContextSummary{Name: name, LoadError: err.Error()})
			continue
		}
		_, kerr := keyring.Get(KeychainService, name)
		summaries = append(summaries, ContextSummary{
			Name:           name,
			RepositoryURL:  cfg.RepositoryURL,
			HasCredentials: kerr == nil,
			HeaderCount:    len(cfg.Headers),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}
