package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

const testAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range Keys {
		t.Setenv(key, "")
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, "RPC_URL=http://from-file:8545\nHEALTHCARE_CONTRACT_ADDRESS="+testAddr+"\nCHAIN_ID=31337\nPRIVATE_KEY=file-key\n")

	t.Setenv(KeyRPCURL, "http://from-env:8545")
	t.Setenv(KeyPrivateKey, "env-key")

	cfg, err := Load(LoadOptions{
		EnvFile:   path,
		Overrides: map[string]string{KeyPrivateKey: "flag-key", KeyChainID: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8545", cfg.RPCURL)
	assert.Equal(t, "flag-key", cfg.PrivateKey)
	assert.Equal(t, uint64(31337), cfg.ChainID, "empty override must not mask the file value")
	assert.Equal(t, testAddr, cfg.HealthcareContract)
	assert.Equal(t, path, cfg.EnvFile)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, DefaultRPCURL, cfg.RPCURL)
	assert.Zero(t, cfg.ChainID)
	assert.Zero(t, cfg.ConfirmTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv(KeyChainID, "sepolia")
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)

	t.Setenv(KeyChainID, "")
	t.Setenv(KeyConfirmTimeout, "soon")
	_, err = Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)

	t.Setenv(KeyConfirmTimeout, "90s")
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.ConfirmTimeout)
}

func TestRequire(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.NoError(t, cfg.Require(KeyRPCURL))

	err = cfg.Require(KeyRPCURL, KeyHealthcareContract)
	assert.ErrorIs(t, err, interfaces.ErrMissingConfig)
	assert.Contains(t, err.Error(), KeyHealthcareContract)
}

func TestContractAddresses(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyHealthcareContract, testAddr)
	t.Setenv(KeyPrescriptionContract, "0x1234")

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	addr, err := cfg.HealthcareAddress()
	require.NoError(t, err)
	assert.Equal(t, testAddr, addr.Hex())

	_, err = cfg.PrescriptionAddress()
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)

	account, err := cfg.Account()
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", account.Hex())
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress(testAddr))
	assert.False(t, ValidAddress(testAddr[2:]))
	assert.False(t, ValidAddress(testAddr+"0"))
	assert.False(t, ValidAddress("0x5FbDB2315678afecb367f032d93F642f64180aaZ"))
}
