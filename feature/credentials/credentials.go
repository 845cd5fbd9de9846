package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrIncomplete means a service account field is missing.
var ErrIncomplete = errors.New("service account is incomplete")

const tokenURI = "https://oauth2.googleapis.com/token"

// ServiceAccount identifies the account used to reach the document store.
type ServiceAccount struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// keyFile is the subset of a downloaded service account key that is read and written.
type keyFile struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri,omitempty"`
}

// Validate returns ErrIncomplete naming the missing fields.
func (sa ServiceAccount) Validate() error {
	var missing []string
	if sa.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// JSON renders the account as a service account key accepted by Google clients.
func (sa ServiceAccount) JSON() ([]byte, error) {
	return json.Marshal(keyFile{
		Type:        "service_account",
		ProjectID:   sa.ProjectID,
		ClientEmail: sa.ClientEmail,
		PrivateKey:  sa.PrivateKey,
		TokenURI:    tokenURI,
	})
}

// Provider returns the service account for a pass.
type Provider interface {
	ServiceAccount(ctx context.Context) (ServiceAccount, error)
}

// ConfigProvider resolves the account from configuration and an optional key file.
type ConfigProvider struct {
	cfg Config
}

// NewProvider creates a provider over cfg.
func NewProvider(cfg Config) *ConfigProvider {
	return &ConfigProvider{cfg: cfg}
}

// ServiceAccount loads, merges and validates the account. The key file is read
// on every call so rotated keys are picked up.
func (p *ConfigProvider) ServiceAccount(ctx context.Context) (ServiceAccount, error) {
	sa := ServiceAccount{
		ProjectID:   p.cfg.ProjectID,
		ClientEmail: p.cfg.ClientEmail,
		PrivateKey:  p.cfg.PrivateKey,
	}

	if p.cfg.KeyFile != "" {
		fromFile, err := readKeyFile(p.cfg.KeyFile)
		if err != nil {
			return ServiceAccount{}, err
		}
		if sa.ProjectID == "" {
			sa.ProjectID = fromFile.ProjectID
		}
		if sa.ClientEmail == "" {
			sa.ClientEmail = fromFile.ClientEmail
		}
		if sa.PrivateKey == "" {
			sa.PrivateKey = fromFile.PrivateKey
		}
	}

	sa.ProjectID = stripQuotes(sa.ProjectID)
	sa.ClientEmail = stripQuotes(sa.ClientEmail)
	sa.PrivateKey = UnescapeKey(strings.ReplaceAll(sa.PrivateKey, `"`, ""))

	if err := sa.Validate(); err != nil {
		return ServiceAccount{}, err
	}
	return sa, nil
}

// UnescapeKey turns literal "\n" sequences into newlines, as keys pasted into
// environment variables usually carry them escaped.
func UnescapeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

func readKeyFile(path string) (ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return ServiceAccount{}, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	return ServiceAccount{ProjectID: kf.ProjectID, ClientEmail: kf.ClientEmail, PrivateKey: kf.PrivateKey}, nil
}

// stripQuotes drops the double quotes left over from pasting a value out of
// the key JSON.
func stripQuotes(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}
