package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/chain"
	"github.com/ruteri/healthcare-contract-client/common"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/shell"
)

const (
	contractAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	devKey       = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAccount   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func newShell(input string) (*shell.Shell, *bytes.Buffer) {
	var out bytes.Buffer
	return shell.New(strings.NewReader(input), &out), &out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func loadConfig(t *testing.T, envFile string, overrides map[string]string) *config.Config {
	t.Helper()
	for _, key := range config.Keys {
		t.Setenv(key, "")
	}
	cfg, err := config.Load(config.LoadOptions{EnvFile: envFile, Overrides: overrides})
	require.NoError(t, err)
	return cfg
}

func TestUpdateEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# keys\nSEPOLIA_RPC_URL=https://sepolia.example\n"), 0o600))

	sh, out := newShell("")
	require.NoError(t, updateEnv(sh, path))

	content := readFile(t, path)
	assert.True(t, strings.HasPrefix(content, "# keys\nSEPOLIA_RPC_URL=https://sepolia.example\n"))
	assert.Contains(t, content, "# Healthcare Contract Configuration\nHEALTHCARE_CONTRACT_ADDRESS=\n")
	assert.Contains(t, content, "PRESCRIPTION_CONTRACT_ADDRESS=\n")
	assert.Contains(t, content, "RPC_URL="+config.DefaultRPCURL)
	assert.Equal(t, 1, strings.Count(content, "SEPOLIA_RPC_URL="))
	assert.NotContains(t, out.String(), "Added SEPOLIA_RPC_URL")
	assert.Contains(t, out.String(), "Added MAINNET_RPC_URL")

	sh, out = newShell("")
	require.NoError(t, updateEnv(sh, path))
	assert.Contains(t, out.String(), "All configurations already exist")
	assert.Equal(t, content, readFile(t, path))
}

func TestSetContractAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HEALTHCARE_CONTRACT_ADDRESS=not-an-address\nPRIVATE_KEY=x\n"), 0o600))

	sh, _ := newShell("")
	require.NoError(t, setContractAddress(sh, path, "healthcare", contractAddr))
	assert.Equal(t, "HEALTHCARE_CONTRACT_ADDRESS="+contractAddr+"\nPRIVATE_KEY=x\n", readFile(t, path))

	sh, out := newShell(contractAddr + "\n")
	require.NoError(t, setContractAddress(sh, path, "prescription", ""))
	assert.Contains(t, out.String(), "Enter your deployed prescription contract address: ")
	assert.Contains(t, readFile(t, path), "# Prescription Contract Configuration\nPRESCRIPTION_CONTRACT_ADDRESS="+contractAddr)

	sh, _ = newShell("")
	assert.Error(t, setContractAddress(sh, path, "healthcare", "0x1234"))
	assert.Error(t, setContractAddress(sh, path, "pharmacy", contractAddr))
	assert.Contains(t, readFile(t, path), "HEALTHCARE_CONTRACT_ADDRESS="+contractAddr)
}

func TestRPCURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RPC_URL=http://old:8545\n"), 0o600))

	sh, out := newShell("")
	require.NoError(t, rpcURLs(sh, path, map[string]string{config.KeySepoliaRPCURL: "https://sepolia.example"}))
	assert.Contains(t, out.String(), "   RPC_URL=http://old:8545")
	content := readFile(t, path)
	assert.Contains(t, content, "RPC_URL=http://old:8545\n")
	assert.Contains(t, content, "SEPOLIA_RPC_URL=https://sepolia.example")

	sh, _ = newShell("2\n\nhttps://mainnet.example\n\n")
	require.NoError(t, rpcURLs(sh, path, nil))
	content = readFile(t, path)
	assert.Contains(t, content, "SEPOLIA_RPC_URL=https://sepolia.example")
	assert.Contains(t, content, "MAINNET_RPC_URL=https://mainnet.example")
	assert.True(t, strings.HasPrefix(content, "RPC_URL="+config.DefaultRPCURL+"\n"))

	sh, out = newShell("3\n")
	require.NoError(t, rpcURLs(sh, path, nil))
	assert.Contains(t, out.String(), "Skipping setup")
	assert.Equal(t, content, readFile(t, path))

	sh, _ = newShell("7\n")
	assert.Error(t, rpcURLs(sh, path, nil))
}

func TestBalanceAccount(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	ctx := context.Background()

	cfg := loadConfig(t, envFile, map[string]string{config.KeyPrivateKey: devKey})
	account, err := balanceAccount(ctx, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, devAccount, account.Hex())

	cfg = loadConfig(t, envFile, map[string]string{config.KeyPrivateKey: devKey, config.KeyAccountAddress: contractAddr})
	account, err = balanceAccount(ctx, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, contractAddr, account.Hex())

	account, err = balanceAccount(ctx, cfg, devAccount)
	require.NoError(t, err)
	assert.Equal(t, devAccount, account.Hex())

	_, err = balanceAccount(ctx, cfg, "nope")
	assert.Error(t, err)

	cfg = loadConfig(t, envFile, nil)
	_, err = balanceAccount(ctx, cfg, "")
	assert.Error(t, err)
}

func TestCheckBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		var result interface{}
		switch req.Method {
		case "eth_chainId":
			result = hexutil.EncodeUint64(31337)
		case "eth_getBalance":
			result = "0x38d7ea4c68000" // 0.001 ETH
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
	defer srv.Close()

	cfg := loadConfig(t, filepath.Join(t.TempDir(), ".env"), map[string]string{config.KeyRPCURL: srv.URL})
	account, err := balanceAccount(context.Background(), loadConfig(t, filepath.Join(t.TempDir(), ".env"), map[string]string{config.KeyPrivateKey: devKey}), "")
	require.NoError(t, err)

	sh, out := newShell("")
	checkBalance(context.Background(), sh, cfg, account, []chain.Network{chain.Custom, chain.Sepolia}, common.DiscardLogger())

	s := out.String()
	assert.Contains(t, s, "Account: "+devAccount)
	assert.Contains(t, s, "Custom Network:\n   Balance: 0.001 ETH")
	assert.NotContains(t, s, "Low balance")
	assert.Contains(t, s, "Sepolia Testnet:\n   Error:")
	assert.Contains(t, s, config.KeySepoliaRPCURL)
}
