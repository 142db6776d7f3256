package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

func TestParseVaultRef(t *testing.T) {
	ref, err := ParseVaultRef("vault://secret/healthcare/deployer#key")
	require.NoError(t, err)
	assert.Equal(t, VaultRef{Mount: "secret", Path: "healthcare/deployer", Field: "key"}, ref)

	ref, err = ParseVaultRef("vault://kv/deployer")
	require.NoError(t, err)
	assert.Equal(t, DefaultVaultField, ref.Field)

	for _, bad := range []string{"vault://secret", "vault:///path", "s3://bucket/key"} {
		_, err := ParseVaultRef(bad)
		assert.ErrorIs(t, err, interfaces.ErrInvalidConfig, bad)
	}
}

func newVaultServer(t *testing.T, path string, data map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "test-token" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
			return
		}
		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id":     "0c1f6e5c-2b0e-4c2b-9a4e-6f3d0f0c5d11",
			"lease_id":       "",
			"renewable":      false,
			"lease_duration": 0,
			"data": map[string]interface{}{
				"data": data,
				"metadata": map[string]interface{}{
					"created_time":    "2024-03-22T02:24:06.945319214Z",
					"custom_metadata": nil,
					"deletion_time":   "",
					"destroyed":       false,
					"version":         1,
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestReadVaultSecret(t *testing.T) {
	srv := newVaultServer(t, "/v1/secret/data/healthcare/deployer", map[string]interface{}{
		"private_key": devKey,
	})

	value, err := ReadVaultSecret(context.Background(), srv.URL, "test-token", "vault://secret/healthcare/deployer")
	require.NoError(t, err)
	assert.Equal(t, devKey, value)

	_, err = ReadVaultSecret(context.Background(), srv.URL, "test-token", "vault://secret/healthcare/deployer#other")
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)

	_, err = ReadVaultSecret(context.Background(), srv.URL, "wrong", "vault://secret/healthcare/deployer")
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)

	_, err = ReadVaultSecret(context.Background(), "", "", "vault://secret/healthcare/deployer")
	assert.ErrorIs(t, err, interfaces.ErrMissingConfig)
}

func TestLoadPrivateKey_FromVault(t *testing.T) {
	srv := newVaultServer(t, "/v1/secret/data/deployer", map[string]interface{}{
		"private_key": "0x" + devKey,
	})
	cfg := loadConfig(t, map[string]string{
		config.KeyPrivateKey: "vault://secret/deployer",
		config.KeyVaultAddr:  srv.URL,
		config.KeyVaultToken: "test-token",
	})

	key, err := LoadPrivateKey(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", hexKey(key))
}

func hexKey(key *ecdsa.PrivateKey) string {
	return hex.EncodeToString(crypto.FromECDSA(key))
}
