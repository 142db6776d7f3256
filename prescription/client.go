// Package prescription provides a client for the on-chain Prescription
// registry, plus in-memory and testify mocks of the same interface.
package prescription

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ruteri/healthcare-contract-client/bindings/prescription"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
var ErrNoTransactOpts = interfaces.ErrNoTransactOpts

// OnchainPrescriptionClient implements the interfaces.PrescriptionRegistry interface
// for a Prescription contract deployed on a blockchain.
type OnchainPrescriptionClient struct {
	contract *prescription.Prescription
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
}

// NewOnchainPrescriptionClient creates a new client for the Prescription contract at address.
func NewOnchainPrescriptionClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainPrescriptionClient, error) {
	contract, err := prescription.NewPrescription(address, client)
	if err != nil {
		return nil, err
	}

	return &OnchainPrescriptionClient{
		contract: contract,
		client:   client,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the transaction options required for functions that modify state.
func (c *OnchainPrescriptionClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// Address returns the contract address the client is bound to.
func (c *OnchainPrescriptionClient) Address() common.Address {
	return c.address
}

// CheckDeployed verifies that contract code exists at the bound address.
func (c *OnchainPrescriptionClient) CheckDeployed(ctx context.Context) error {
	code, err := c.client.CodeAt(ctx, c.address, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch code at %s: %w", c.address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w: %s", interfaces.ErrNoCode, c.address.Hex())
	}
	return nil
}

// GetPrescriptionInfo retrieves the prescription stored under hash.
func (c *OnchainPrescriptionClient) GetPrescriptionInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error) {
	opts := &bind.CallOpts{Context: ctx}

	info, err := c.contract.GetPrescriptionInfo(opts, hash)
	if err != nil {
		return interfaces.PrescriptionRecord{}, err
	}

	return interfaces.PrescriptionRecord{
		PrescribeDate: toUint64(info.PrescribeDate),
		EndDate:       toUint64(info.EndDate),
		PrepareDate:   toUint64(info.PrepareDate),
		Hospital:      info.Hospital,
		Pharmacy:      info.Pharmacy,
		Status:        interfaces.PrescriptionStatus(info.Status),
	}, nil
}

// RegisterPrescription submits a RegisterPrescription transaction.
func (c *OnchainPrescriptionClient) RegisterPrescription(ctx context.Context, hash interfaces.RecordHash, prescribeDate, endDate uint64, hospital string) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.RegisterPrescription(opts, hash, new(big.Int).SetUint64(prescribeDate), new(big.Int).SetUint64(endDate), hospital)
}

// UsePrescription submits a UsePrescription transaction.
func (c *OnchainPrescriptionClient) UsePrescription(ctx context.Context, hash interfaces.RecordHash, prepareDate uint64, pharmacy string) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.UsePrescription(opts, hash, new(big.Int).SetUint64(prepareDate), pharmacy)
}

// WaitMined blocks until tx is included in a block or ctx is done.
func (c *OnchainPrescriptionClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s in block %d", interfaces.ErrTransactionFailed, tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}
	return receipt, nil
}

// Events returns the register and use events emitted since fromBlock, in chain order.
func (c *OnchainPrescriptionClient) Events(ctx context.Context, fromBlock uint64) ([]interfaces.RecordEvent, error) {
	opts := &bind.FilterOpts{Start: fromBlock, Context: ctx}

	var events []interfaces.RecordEvent

	registered, err := c.contract.FilterLogRegisterPrescription(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to filter register events: %w", err)
	}
	defer registered.Close()
	for registered.Next() {
		events = append(events, recordEvent("LogRegisterPrescription", registered.Event.PrescriptionHash, registered.Event.Raw))
	}
	if err := registered.Error(); err != nil {
		return nil, err
	}

	used, err := c.contract.FilterLogUsePrescription(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to filter use events: %w", err)
	}
	defer used.Close()
	for used.Next() {
		events = append(events, recordEvent("LogUsePrescription", used.Event.PrescriptionHash, used.Event.Raw))
	}
	if err := used.Error(); err != nil {
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

func (c *OnchainPrescriptionClient) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
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

func toUint64(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}
