package chain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// DefaultVaultField is the KV field read when a reference names none.
const DefaultVaultField = "private_key"

// IsVaultRef reports whether s is a vault://mount/path#field reference.
func IsVaultRef(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "vault://")
}

// VaultRef locates one field of a KV v2 secret.
type VaultRef struct {
	Mount string
	Path  string
	Field string
}

// ParseVaultRef parses vault://<mount>/<path>[#field].
func ParseVaultRef(ref string) (VaultRef, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Scheme != "vault" {
		return VaultRef{}, fmt.Errorf("%w: invalid vault reference %q", interfaces.ErrInvalidConfig, ref)
	}

	path := strings.Trim(u.Path, "/")
	if u.Host == "" || path == "" {
		return VaultRef{}, fmt.Errorf("%w: vault reference %q needs a mount and a path", interfaces.ErrInvalidConfig, ref)
	}

	field := u.Fragment
	if field == "" {
		field = DefaultVaultField
	}
	return VaultRef{Mount: u.Host, Path: path, Field: field}, nil
}

// ReadVaultSecret resolves a vault:// reference through the KV v2 engine at
// address, authenticating with token.
func ReadVaultSecret(ctx context.Context, address, token, ref string) (string, error) {
	parsed, err := ParseVaultRef(ref)
	if err != nil {
		return "", err
	}
	if address == "" || token == "" {
		return "", fmt.Errorf("%w: VAULT_ADDR and VAULT_TOKEN are required for vault references", interfaces.ErrMissingConfig)
	}

	cfg := api.DefaultConfig()
	cfg.Address = address
	cfg.HttpClient = &http.Client{Timeout: 30 * time.Second}

	client, err := api.NewClient(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(token)

	secret, err := client.KVv2(parsed.Mount).Get(ctx, parsed.Path)
	if err != nil {
		return "", fmt.Errorf("%w: could not read %s/%s from Vault: %v", interfaces.ErrInvalidConfig, parsed.Mount, parsed.Path, err)
	}

	value, ok := secret.Data[parsed.Field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: field %q not found in Vault secret %s/%s", interfaces.ErrInvalidConfig, parsed.Field, parsed.Mount, parsed.Path)
	}
	return value, nil
}
