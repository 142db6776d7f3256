// Package healthcare provides a client for the on-chain Healthcare record
// registry, plus in-memory and testify mocks of the same interface.
package healthcare

import (
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ruteri/healthcare-contract-client/bindings/healthcare"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
var ErrNoTransactOpts = interfaces.ErrNoTransactOpts

// OnchainHealthcareClient implements the interfaces.HealthcareRegistry interface for
// interacting with a Healthcare contract deployed on a blockchain.
type OnchainHealthcareClient struct {
	contract *healthcare.Healthcare
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
}

// NewOnchainHealthcareClient creates a new client for the Healthcare contract
// at the specified address. It requires a ContractBackend for reading from the blockchain
// and a DeployBackend for awaiting transaction receipts.
func NewOnchainHealthcareClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainHealthcareClient, error) {
	contract, err := healthcare.NewHealthcare(address, client)
	if err != nil {
		return nil, err
	}

	return &OnchainHealthcareClient{
		contract: contract,
		client:   client,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the transaction options required for functions that modify state.
// This must be called before using any methods that send transactions to the blockchain.
func (c *OnchainHealthcareClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// Address returns the contract address the client is bound to.
func (c *OnchainHealthcareClient) Address() common.Address {
	return c.address
}

// CheckDeployed verifies that contract code exists at the bound address.
func (c *OnchainHealthcareClient) CheckDeployed(ctx context.Context) error {
	code, err := c.client.CodeAt(ctx, c.address, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch code at %s: %w", c.address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w: %s", interfaces.ErrNoCode, c.address.Hex())
	}
	return nil
}

// GetHealthcareInfo retrieves the record stored under hash.
// An unregistered hash yields a zero record with status Null and no error.
func (c *OnchainHealthcareClient) GetHealthcareInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error) {
	opts := &bind.CallOpts{Context: ctx}

	info, err := c.contract.GetHealthcareInfo(opts, hash)
	if err != nil {
		return interfaces.HealthcareRecord{}, err
	}

	record := interfaces.HealthcareRecord{
		PhoneNumber: info.PhoneNumber,
		Hospital:    info.Hospital,
		Status:      interfaces.HealthcareStatus(info.Status),
		Type:        interfaces.HealthcareType(info.HealthcareType),
	}
	if info.RegisteredDate != nil {
		record.RegisteredDate = info.RegisteredDate.Uint64()
	}
	if info.DeletedDate != nil {
		record.DeletedDate = info.DeletedDate.Uint64()
	}
	return record, nil
}

// RegisterHealthcare submits a RegisterHealthcare transaction.
// The returned transaction is pending; use WaitMined to await its inclusion.
func (c *OnchainHealthcareClient) RegisterHealthcare(ctx context.Context, hash interfaces.RecordHash, phoneNumber string, healthcareType interfaces.HealthcareType, hospital string) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.RegisterHealthcare(opts, hash, phoneNumber, uint8(healthcareType), hospital)
}

// DeleteHealthcare submits a DeleteHealthcare transaction.
func (c *OnchainHealthcareClient) DeleteHealthcare(ctx context.Context, hash interfaces.RecordHash) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.DeleteHealthcare(opts, hash)
}

// WaitMined blocks until tx is included in a block or ctx is done.
// A mined transaction with a failed receipt returns ErrTransactionFailed along with the receipt.
func (c *OnchainHealthcareClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s in block %d", interfaces.ErrTransactionFailed, tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}
	return receipt, nil
}

// Events returns the register and delete events emitted since fromBlock, in chain order.
func (c *OnchainHealthcareClient) Events(ctx context.Context, fromBlock uint64) ([]interfaces.RecordEvent, error) {
	opts := &bind.FilterOpts{Start: fromBlock, Context: ctx}

	var events []interfaces.RecordEvent

	registered, err := c.contract.FilterLogRegisterHealthcare(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to filter register events: %w", err)
	}
	defer registered.Close()
	for registered.Next() {
		events = append(events, recordEvent("LogRegisterHealthcare", registered.Event.HealthcareHash, registered.Event.Raw))
	}
	if err := registered.Error(); err != nil {
		return nil, err
	}

	deleted, err := c.contract.FilterLogDeleteHealthcare(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to filter delete events: %w", err)
	}
	defer deleted.Close()
	for deleted.Next() {
		events = append(events, recordEvent("LogDeleteHealthcare", deleted.Event.HealthcareHash, deleted.Event.Raw))
	}
	if err := deleted.Error(); err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})
	return events, nil
}

func (c *OnchainHealthcareClient) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if c.auth == nil {
		return nil, ErrNoTransactOpts
	}

	opts := *c.auth
	opts.Context = ctx
	return &opts, nil
}

func recordEvent(name string, hash [32]byte, raw types.Log) interfaces.RecordEvent {
	return interfaces.RecordEvent{
		Name:        name,
		Hash:        interfaces.RecordHash(hash),
		BlockNumber: raw.BlockNumber,
		TxHash:      raw.TxHash,
		LogIndex:    raw.Index,
	}
}

// HealthcareFactory creates Healthcare clients bound to a given address
// over a shared connection.
type HealthcareFactory struct {
	client  bind.ContractBackend
	backend bind.DeployBackend
	auth    *bind.TransactOpts
}

// NewHealthcareFactory creates a new factory for Healthcare clients.
// auth may be nil for read-only clients.
func NewHealthcareFactory(client bind.ContractBackend, backend bind.DeployBackend, auth *bind.TransactOpts) *HealthcareFactory {
	return &HealthcareFactory{client: client, backend: backend, auth: auth}
}

// HealthcareFor returns a client for the contract at address with the
// factory's transact options applied.
func (f *HealthcareFactory) HealthcareFor(address interfaces.ContractAddress) (*OnchainHealthcareClient, error) {
	client, err := NewOnchainHealthcareClient(f.client, f.backend, common.Address(address))
	if err != nil {
		return nil, err
	}
	if f.auth != nil {
		client.SetTransactOpts(f.auth)
	}
	return client, nil
}
