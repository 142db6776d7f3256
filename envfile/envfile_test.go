package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func tempEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestSet_ReplacesInPlace(t *testing.T) {
	path := tempEnv(t, "# keys\nPRIVATE_KEY=abc\nHEALTHCARE_CONTRACT_ADDRESS=not-an-address\nRPC_URL=http://localhost:8545\n")

	require.NoError(t, Set(path, "HEALTHCARE_CONTRACT_ADDRESS", addr, "Healthcare Contract Configuration"))

	assert.Equal(t,
		"# keys\nPRIVATE_KEY=abc\nHEALTHCARE_CONTRACT_ADDRESS="+addr+"\nRPC_URL=http://localhost:8545\n",
		readFile(t, path))
}

func TestSet_AppendsUnderSection(t *testing.T) {
	path := tempEnv(t, "PRIVATE_KEY=abc\n")

	require.NoError(t, Set(path, "HEALTHCARE_CONTRACT_ADDRESS", addr, "Healthcare Contract Configuration"))
	require.NoError(t, Set(path, "SEPOLIA_RPC_URL", "https://sepolia.example", "Network RPC URLs"))
	require.NoError(t, Set(path, "MAINNET_RPC_URL", "https://mainnet.example", "Network RPC URLs"))

	assert.Equal(t,
		"PRIVATE_KEY=abc\n\n# Healthcare Contract Configuration\nHEALTHCARE_CONTRACT_ADDRESS="+addr+
			"\n\n# Network RPC URLs\nSEPOLIA_RPC_URL=https://sepolia.example\nMAINNET_RPC_URL=https://mainnet.example\n",
		readFile(t, path))
}

func TestSet_MissingFile(t *testing.T) {
	path := tempEnv(t, "")

	require.NoError(t, Set(path, "RPC_URL", "http://localhost:8545", ""))
	assert.Equal(t, "RPC_URL=http://localhost:8545\n", readFile(t, path))
}

func TestEnsureKeys(t *testing.T) {
	path := tempEnv(t, "SEPOLIA_RPC_URL=https://sepolia.example\n")
	entries := []Entry{
		{Key: "HEALTHCARE_CONTRACT_ADDRESS", Section: "Healthcare Contract Configuration"},
		{Key: "SEPOLIA_RPC_URL", Section: "Network RPC URLs"},
		{Key: "MAINNET_RPC_URL", Section: "Network RPC URLs"},
		{Key: "RPC_URL", Value: "http://localhost:8545", Section: "Network RPC URLs"},
	}

	added, err := EnsureKeys(path, entries...)
	require.NoError(t, err)
	// SEPOLIA_RPC_URL= must not count as RPC_URL=.
	assert.Equal(t, []string{"HEALTHCARE_CONTRACT_ADDRESS", "MAINNET_RPC_URL", "RPC_URL"}, added)

	values, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.example", values["SEPOLIA_RPC_URL"])
	assert.Equal(t, "http://localhost:8545", values["RPC_URL"])
	assert.Equal(t, "", values["HEALTHCARE_CONTRACT_ADDRESS"])

	before := readFile(t, path)
	added, err = EnsureKeys(path, entries...)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, before, readFile(t, path))
}

func TestLines(t *testing.T) {
	path := tempEnv(t, "# RPC_URL=commented\nRPC_URL=http://localhost:8545\nSEPOLIA_RPC_URL=\nPRIVATE_KEY=abc\n")

	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"RPC_URL=http://localhost:8545", "SEPOLIA_RPC_URL="}, f.Lines("RPC_URL"))
}

func TestRead_MissingFile(t *testing.T) {
	values, err := Read(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Empty(t, values)
}
