package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Transactor resolves the signer for this connection. An explicit
// PRIVATE_KEY (hex or vault:// reference) wins; otherwise, on networks that
// allow it, the node's account sends through eth_sendTransaction. Signing
// through the node runs on ctx, so cancelling it aborts a pending submission.
func (c *Connection) Transactor(ctx context.Context, cfg *config.Config) (*bind.TransactOpts, error) {
	if cfg.PrivateKey != "" {
		key, err := LoadPrivateKey(ctx, cfg)
		if err != nil {
			return nil, err
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, c.ChainID)
		if err != nil {
			return nil, fmt.Errorf("could not create transactor: %w", err)
		}
		c.log.Info("using configured signing key", "account", auth.From.Hex())
		return auth, nil
	}

	if !c.Network.NodeAccounts {
		return nil, fmt.Errorf("%w: %s not configured for %s", interfaces.ErrNoSigner, config.KeyPrivateKey, c.Network.Name)
	}

	from, err := cfg.Account()
	if err != nil {
		return nil, err
	}
	if from == (common.Address{}) {
		accounts, err := c.Accounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", interfaces.ErrNoSigner, err)
		}
		if len(accounts) == 0 {
			return nil, fmt.Errorf("%w: no accounts found, make sure the local node is running", interfaces.ErrNoSigner)
		}
		from = accounts[0]
	}

	c.log.Info("using node-managed account", "account", from.Hex())
	return &bind.TransactOpts{
		From:    from,
		Signer:  c.nodeSigner(ctx, from),
		Context: ctx,
	}, nil
}

// LoadPrivateKey parses PRIVATE_KEY, resolving vault:// references first.
func LoadPrivateKey(ctx context.Context, cfg *config.Config) (*ecdsa.PrivateKey, error) {
	raw := cfg.PrivateKey
	if IsVaultRef(raw) {
		secret, err := ReadVaultSecret(ctx, cfg.VaultAddr, cfg.VaultToken, raw)
		if err != nil {
			return nil, err
		}
		raw = secret
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid private key", interfaces.ErrInvalidConfig, config.KeyPrivateKey)
	}
	return key, nil
}

type sendTxArgs struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to,omitempty"`
	Gas                  hexutil.Uint64  `json:"gas"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	Value                *hexutil.Big    `json:"value"`
	Nonce                hexutil.Uint64  `json:"nonce"`
	Data                 hexutil.Bytes   `json:"data"`
}

// nodeSigner submits with eth_sendTransaction, the node signing with its own
// account, and returns the transaction as the node recorded it. ctx bounds
// both the submission and the lookup. The backend from Backend skips the raw
// resubmission bind performs after signing.
func (c *Connection) nodeSigner(ctx context.Context, from common.Address) bind.SignerFn {
	return func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != from {
			return nil, bind.ErrNotAuthorized
		}

		args := sendTxArgs{
			From:  from,
			To:    tx.To(),
			Gas:   hexutil.Uint64(tx.Gas()),
			Value: (*hexutil.Big)(valueOrZero(tx.Value())),
			Nonce: hexutil.Uint64(tx.Nonce()),
			Data:  tx.Data(),
		}
		if tx.Type() == types.DynamicFeeTxType {
			args.MaxFeePerGas = (*hexutil.Big)(tx.GasFeeCap())
			args.MaxPriorityFeePerGas = (*hexutil.Big)(tx.GasTipCap())
		} else {
			args.GasPrice = (*hexutil.Big)(tx.GasPrice())
		}

		var hash common.Hash
		if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
			return nil, fmt.Errorf("eth_sendTransaction: %w", err)
		}
		c.nodeSent.Store(hash, struct{}{})

		sent, err := c.sentTransaction(ctx, hash)
		if err != nil {
			c.nodeSent.Delete(hash)
			return nil, fmt.Errorf("could not read back transaction %s: %w", hash.Hex(), err)
		}
		return sent, nil
	}
}

// sentTransaction polls for a transaction the node just accepted. Automining
// dev nodes return it at once.
func (c *Connection) sentTransaction(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		tx, _, err := c.TransactionByHash(ctx, hash)
		if err == nil {
			return tx, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
