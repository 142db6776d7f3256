package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/common"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Hardhat's first development key.
const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type rpcHandler func(params []json.RawMessage) (interface{}, error)

func newRPCServer(t *testing.T, handlers map[string]rpcHandler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		h, ok := handlers[req.Method]
		if !ok {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found: " + req.Method}
		} else if result, err := h(req.Params); err != nil {
			resp["error"] = map[string]interface{}{"code": -32000, "message": err.Error()}
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chainIDHandler(id uint64) rpcHandler {
	return func([]json.RawMessage) (interface{}, error) {
		return hexutil.EncodeUint64(id), nil
	}
}

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	for _, key := range config.Keys {
		t.Setenv(key, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load(config.LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	return cfg
}

func TestLookupNetwork(t *testing.T) {
	n, err := LookupNetwork("2")
	require.NoError(t, err)
	assert.Equal(t, Sepolia, n)

	n, err = LookupNetwork(" Mainnet ")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n.ChainID)

	_, err = LookupNetwork("5")
	assert.ErrorIs(t, err, interfaces.ErrValidation)
}

func TestNetworkEndpoint(t *testing.T) {
	cfg := loadConfig(t, map[string]string{config.KeyMainnetRPCURL: "https://mainnet.example"})

	url, err := Local.Endpoint(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", url)

	url, err = Mainnet.Endpoint(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.example", url)

	_, err = Sepolia.Endpoint(cfg)
	assert.ErrorIs(t, err, interfaces.ErrMissingConfig)
	assert.Contains(t, err.Error(), config.KeySepoliaRPCURL)
}

func TestConnect_ChainMismatchIsNotFatal(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{"eth_chainId": chainIDHandler(1337)})
	cfg := loadConfig(t, map[string]string{config.KeySepoliaRPCURL: srv.URL})

	conn, err := Connect(context.Background(), Sepolia, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, uint64(1337), conn.ChainID.Uint64())
	assert.Equal(t, Sepolia, conn.Network)
	assert.Equal(t, srv.URL, conn.URL)
}

func TestTransactor_PrivateKey(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{"eth_chainId": chainIDHandler(31337)})
	cfg := loadConfig(t, map[string]string{config.KeyRPCURL: srv.URL, config.KeyPrivateKey: "0x" + devKey})

	conn, err := Connect(context.Background(), Custom, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	auth, err := conn.Transactor(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", auth.From.Hex())
}

func TestTransactor_InvalidKey(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{"eth_chainId": chainIDHandler(31337)})
	cfg := loadConfig(t, map[string]string{config.KeyRPCURL: srv.URL, config.KeyPrivateKey: "not-a-key"})

	conn, err := Connect(context.Background(), Custom, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Transactor(context.Background(), cfg)
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfig)
	assert.NotContains(t, err.Error(), "not-a-key")
}

func TestTransactor_RemoteNetworkNeedsKey(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{
		"eth_chainId":  chainIDHandler(11155111),
		"eth_accounts": func([]json.RawMessage) (interface{}, error) { return []string{"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"}, nil },
	})
	cfg := loadConfig(t, map[string]string{config.KeySepoliaRPCURL: srv.URL})

	conn, err := Connect(context.Background(), Sepolia, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Transactor(context.Background(), cfg)
	assert.ErrorIs(t, err, interfaces.ErrNoSigner)
}

func TestTransactor_NoNodeAccounts(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{
		"eth_chainId":  chainIDHandler(31337),
		"eth_accounts": func([]json.RawMessage) (interface{}, error) { return []string{}, nil },
	})
	cfg := loadConfig(t, map[string]string{config.KeyRPCURL: srv.URL})

	conn, err := Connect(context.Background(), Custom, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Transactor(context.Background(), cfg)
	assert.ErrorIs(t, err, interfaces.ErrNoSigner)
}

// nodeAccountServer emulates a dev node that signs with its first account:
// eth_sendTransaction signs and stores, eth_getTransactionByHash reads back.
func nodeAccountServer(t *testing.T, key *ecdsa.PrivateKey, chainID *big.Int) *httptest.Server {
	t.Helper()
	account := crypto.PubkeyToAddress(key.PublicKey)

	var mu sync.Mutex
	sent := map[ethcommon.Hash]*types.Transaction{}

	return newRPCServer(t, map[string]rpcHandler{
		"eth_chainId": chainIDHandler(chainID.Uint64()),
		"eth_accounts": func([]json.RawMessage) (interface{}, error) {
			return []string{account.Hex()}, nil
		},
		"eth_sendTransaction": func(params []json.RawMessage) (interface{}, error) {
			var args struct {
				From     ethcommon.Address  `json:"from"`
				To       *ethcommon.Address `json:"to"`
				Gas      hexutil.Uint64     `json:"gas"`
				GasPrice *hexutil.Big       `json:"gasPrice"`
				Value    *hexutil.Big       `json:"value"`
				Nonce    hexutil.Uint64     `json:"nonce"`
				Data     hexutil.Bytes      `json:"data"`
			}
			if err := json.Unmarshal(params[0], &args); err != nil {
				return nil, err
			}
			if args.From != account {
				return nil, errors.New("unknown account")
			}

			tx, err := types.SignNewTx(key, types.LatestSignerForChainID(chainID), &types.LegacyTx{
				Nonce:    uint64(args.Nonce),
				To:       args.To,
				Gas:      uint64(args.Gas),
				GasPrice: args.GasPrice.ToInt(),
				Value:    args.Value.ToInt(),
				Data:     args.Data,
			})
			if err != nil {
				return nil, err
			}
			mu.Lock()
			sent[tx.Hash()] = tx
			mu.Unlock()
			return tx.Hash().Hex(), nil
		},
		"eth_getTransactionByHash": func(params []json.RawMessage) (interface{}, error) {
			var hash ethcommon.Hash
			if err := json.Unmarshal(params[0], &hash); err != nil {
				return nil, err
			}
			mu.Lock()
			tx, ok := sent[hash]
			mu.Unlock()
			if !ok {
				return nil, nil
			}
			raw, err := tx.MarshalJSON()
			if err != nil {
				return nil, err
			}
			return json.RawMessage(raw), nil
		},
	})
}

func TestTransactor_NodeAccountSends(t *testing.T) {
	key, err := crypto.HexToECDSA(devKey)
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey)
	chainID := big.NewInt(31337)

	srv := nodeAccountServer(t, key, chainID)
	cfg := loadConfig(t, map[string]string{config.KeyRPCURL: srv.URL})

	conn, err := Connect(context.Background(), Custom, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	auth, err := conn.Transactor(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, account, auth.From)

	to := ethcommon.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	unsigned := types.NewTx(&types.LegacyTx{Nonce: 4, To: &to, Gas: 21000, GasPrice: big.NewInt(1_000_000_000), Data: []byte{0x01}})

	sent, err := auth.Signer(auth.From, unsigned)
	require.NoError(t, err)
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), sent)
	require.NoError(t, err)
	assert.Equal(t, account, sender)
	assert.Equal(t, uint64(4), sent.Nonce())
	assert.Equal(t, []byte{0x01}, sent.Data())

	// bind resubmits the signed transaction; the node already has it. The
	// test node has no eth_sendRawTransaction, so any real send fails.
	backend := conn.Backend()
	require.NoError(t, backend.SendTransaction(context.Background(), sent))
	assert.Error(t, backend.SendTransaction(context.Background(), sent))

	_, err = auth.Signer(to, unsigned)
	assert.ErrorIs(t, err, bind.ErrNotAuthorized)
}

func TestTransactor_NodeAccountHonoursContext(t *testing.T) {
	key, err := crypto.HexToECDSA(devKey)
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey)

	srv := nodeAccountServer(t, key, big.NewInt(31337))
	cfg := loadConfig(t, map[string]string{
		config.KeyRPCURL:         srv.URL,
		config.KeyAccountAddress: account.Hex(),
	})

	conn, err := Connect(context.Background(), Custom, cfg, common.DiscardLogger())
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	auth, err := conn.Transactor(ctx, cfg)
	require.NoError(t, err)
	cancel()

	to := ethcommon.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	_, err = auth.Signer(account, types.NewTx(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  *big.Int
		want string
	}{
		{big.NewInt(0), "0.0"},
		{big.NewInt(1_000_000_000_000_000_000), "1.0"},
		{big.NewInt(1_500_000_000_000_000_000), "1.5"},
		{big.NewInt(1_000_000_000_000_000), "0.001"},
		{big.NewInt(1), "0.000000000000000001"},
		{big.NewInt(-2_000_000_000_000_000_000), "-2.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEther(tt.wei))
	}
}

func TestCheckBalances(t *testing.T) {
	srv := newRPCServer(t, map[string]rpcHandler{
		"eth_chainId": chainIDHandler(31337),
		"eth_getBalance": func([]json.RawMessage) (interface{}, error) {
			return hexutil.EncodeBig(big.NewInt(500_000_000_000_000)), nil
		},
	})
	cfg := loadConfig(t, map[string]string{config.KeyRPCURL: srv.URL})

	account := ethcommon.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	reports := CheckBalances(context.Background(), []Network{Custom, Sepolia}, cfg, account, common.DiscardLogger())
	require.Len(t, reports, 2)

	require.NoError(t, reports[0].Err)
	assert.Equal(t, "0.0005", reports[0].ETH())
	assert.True(t, reports[0].Low())

	assert.ErrorIs(t, reports[1].Err, interfaces.ErrMissingConfig)
	assert.False(t, reports[1].Low())
}
