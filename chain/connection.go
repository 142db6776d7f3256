package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ruteri/healthcare-contract-client/config"
)

// Connection is an open JSON-RPC channel to one node.
type Connection struct {
	*ethclient.Client

	Network Network
	URL     string
	ChainID *big.Int

	rpc *rpc.Client
	log *slog.Logger

	// nodeSent holds hashes the node accepted through eth_sendTransaction
	// and bind has not yet resubmitted.
	nodeSent sync.Map
}

// Connect dials the endpoint of network and reads its chain id. A chain id
// that differs from the preset or from CHAIN_ID is logged, not rejected.
func Connect(ctx context.Context, network Network, cfg *config.Config, log *slog.Logger) (*Connection, error) {
	url, err := network.Endpoint(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := Dial(ctx, url, log)
	if err != nil {
		return nil, err
	}
	conn.Network = network

	expected := network.ChainID
	if expected == 0 {
		expected = cfg.ChainID
	}
	if expected != 0 && conn.ChainID.Uint64() != expected {
		log.Warn("node chain id does not match the selected network",
			"network", network.Name,
			"expected", expected,
			"actual", conn.ChainID.Uint64())
	}

	return conn, nil
}

// Dial opens a connection to url without a network preset.
func Dial(ctx context.Context, url string, log *slog.Logger) (*Connection, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", url, err)
	}

	client := ethclient.NewClient(rpcClient)
	chainID, err := client.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("could not read chain id from %s: %w", url, err)
	}

	log.Debug("connected to node", "url", url, "chain_id", chainID.Uint64())

	return &Connection{
		Client:  client,
		Network: Network{Name: url, URL: url},
		URL:     url,
		ChainID: chainID,
		rpc:     rpcClient,
		log:     log,
	}, nil
}

// Accounts returns the accounts managed by the node.
func (c *Connection) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

// Balance returns the balance of addr at the latest block.
func (c *Connection) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.BalanceAt(ctx, addr, nil)
}

// Backend returns the contract backend for bindings. Transactions a node
// account already sent are not submitted a second time as raw transactions.
func (c *Connection) Backend() bind.ContractBackend {
	return &nodeBackend{Client: c.Client, conn: c}
}

type nodeBackend struct {
	*ethclient.Client
	conn *Connection
}

func (b *nodeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if _, ok := b.conn.nodeSent.LoadAndDelete(tx.Hash()); ok {
		return nil
	}
	return b.Client.SendTransaction(ctx, tx)
}
