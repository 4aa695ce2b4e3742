package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no credential is stored under a key.
var ErrNotFound = errors.New("credential not found")

// Provider defines the interface for credential storage.
type Provider interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear(key string) error
}

// EnvProvider retrieves credentials from environment variables. It is
// read-only; Set and Clear are rejected.
type EnvProvider struct{}

func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

func (p *EnvProvider) Get(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

func (p *EnvProvider) Set(key, value string) error {
	return errors.New("environment credentials are read-only")
}

func (p *EnvProvider) Clear(key string) error {
	return errors.New("environment credentials are read-only")
}

// FileProvider persists credentials as a JSON object in a single file,
// mirroring a browser's local storage: the whole map is rewritten on
// every mutation.
type FileProvider struct {
	mu   sync.Mutex
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Get(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return "", err
	}

	value, ok := creds[key]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

func (p *FileProvider) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return err
	}
	creds[key] = value
	return p.store(creds)
}

func (p *FileProvider) Clear(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return err
	}
	delete(creds, key)
	return p.store(creds)
}

func (p *FileProvider) load() (map[string]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds := map[string]string{}
	if len(data) == 0 {
		return creds, nil
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return creds, nil
}

func (p *FileProvider) store(creds map[string]string) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	return os.WriteFile(p.path, data, 0o600)
}
