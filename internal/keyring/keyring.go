// Package keyring keeps the Postgres connection string in the OS keyring so
// it never has to appear in config.yaml.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tally/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Vault reads and writes one secret under the tally service name.
type Vault struct {
	service string
	user    string
}

// New returns the vault for the default database credential.
func New() Vault {
	return Vault{service: constants.AppName, user: constants.DefaultKeyringUser}
}

// ForUser scopes the vault to a different account, e.g. a second database.
func (v Vault) ForUser(user string) Vault {
	v.user = user
	return v
}

func (v Vault) Get() (string, error) {
	secret, err := keyring.Get(v.service, v.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (v Vault) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(v.service, v.user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (v Vault) Delete() error {
	err := keyring.Delete(v.service, v.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers at all. A missing probe
// entry still counts as available.
func (v Vault) Available() bool {
	_, err := keyring.Get(v.service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// ResolveConnectionString returns configured when it is set and falls back
// to the keyring otherwise.
func ResolveConnectionString(configured string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}
	return New().Get()
}
