// Package chaintest provides an in-process contract backend for exercising
// generated bindings without a node. Calls are answered by per-method
// handlers and sent transactions are recorded with successful receipts.
package chaintest

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
)

// ChainID is the chain id used by NewTransactor.
var ChainID = big.NewInt(31337)

// CallHandler answers an eth_call for one method with its unpacked inputs.
type CallHandler func(args []interface{}) ([]interface{}, error)

// Backend implements bind.ContractBackend and bind.DeployBackend.
type Backend struct {
	mu sync.Mutex

	abi      *abi.ABI
	code     []byte
	calls    map[string]CallHandler
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	logs     []types.Log

	// EstimateErr, when set, is returned by EstimateGas, the way a node
	// reports a revert before the transaction is ever broadcast.
	EstimateErr error
	// FailReceipts marks every subsequent receipt as failed.
	FailReceipts bool
}

// NewBackend creates a backend that decodes calls against contractABI.
func NewBackend(contractABI *abi.ABI) *Backend {
	return &Backend{
		abi:      contractABI,
		code:     []byte{0x60, 0x80, 0x60, 0x40},
		calls:    make(map[string]CallHandler),
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

// HandleCall registers the handler answering calls to method.
func (b *Backend) HandleCall(method string, h CallHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[method] = h
}

// SetCode replaces the code reported at every address. Empty code simulates
// an undeployed contract.
func (b *Backend) SetCode(code []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.code = code
}

// AddLog appends a log returned by FilterLogs.
func (b *Backend) AddLog(l types.Log) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs = append(b.logs, l)
}

// EventLog builds a log for a non-indexed event of the backend's ABI.
func (b *Backend) EventLog(name string, blockNumber uint64, args ...interface{}) (types.Log, error) {
	ev, ok := b.abi.Events[name]
	if !ok {
		return types.Log{}, fmt.Errorf("unknown event %s", name)
	}
	data, err := ev.Inputs.NonIndexed().Pack(args...)
	if err != nil {
		return types.Log{}, err
	}
	return types.Log{
		Topics:      []common.Hash{ev.ID},
		Data:        data,
		BlockNumber: blockNumber,
		TxHash:      crypto.Keccak256Hash([]byte(name), new(big.Int).SetUint64(blockNumber).Bytes()),
	}, nil
}

// Sent returns every transaction submitted so far.
func (b *Backend) Sent() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.sent...)
}

// DecodeSent unpacks the method name and arguments of a submitted transaction.
func (b *Backend) DecodeSent(tx *types.Transaction) (string, []interface{}, error) {
	data := tx.Data()
	if len(data) < 4 {
		return "", nil, errors.New("transaction carries no call data")
	}
	method, err := b.abi.MethodById(data[:4])
	if err != nil {
		return "", nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return "", nil, err
	}
	return method.Name, args, nil
}

func (b *Backend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.code, nil
}

func (b *Backend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if len(call.Data) < 4 {
		return nil, errors.New("call carries no selector")
	}
	method, err := b.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	h, ok := b.calls[method.Name]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no handler for %s", method.Name)
	}

	out, err := h(args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(out...)
}

func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// No base fee selects legacy pricing.
	return &types.Header{Number: big.NewInt(int64(len(b.sent)))}, nil
}

func (b *Backend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return b.CodeAt(ctx, account, nil)
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.sent)), nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(params.GWei), nil
}

func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(params.GWei), nil
}

func (b *Backend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if b.EstimateErr != nil {
		return 0, b.EstimateErr
	}
	return 100_000, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = append(b.sent, tx)
	status := types.ReceiptStatusSuccessful
	if b.FailReceipts {
		status = types.ReceiptStatusFailed
	}
	b.receipts[tx.Hash()] = &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(int64(len(b.sent))),
	}
	return nil
}

func (b *Backend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []types.Log
	for _, l := range b.logs {
		if query.FromBlock != nil && l.BlockNumber < query.FromBlock.Uint64() {
			continue
		}
		if len(query.Topics) > 0 && len(query.Topics[0]) > 0 && !containsHash(query.Topics[0], l.Topics[0]) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (b *Backend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions are not supported")
}

func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	receipt, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

// NewTransactor creates a keyed transactor with a fresh key on ChainID.
func NewTransactor() (*bind.TransactOpts, *ecdsa.PrivateKey, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, ChainID)
	if err != nil {
		return nil, nil, err
	}
	return auth, key, nil
}

// RevertError mimics the JSON-RPC error a node returns for a reverted call.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return "execution reverted: " + e.Reason
}

// ErrorData returns the ABI-encoded Error(string) payload, hex encoded.
func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(RevertData(e.Reason))
}

// RevertData encodes reason as Solidity's Error(string) revert payload.
func RevertData(reason string) []byte {
	stringType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: stringType}}.Pack(reason)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return append(selector, packed...)
}

func containsHash(set []common.Hash, h common.Hash) bool {
	for _, candidate := range set {
		if candidate == h {
			return true
		}
	}
	return false
}
