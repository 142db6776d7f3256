package healthcare

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Revert reasons emitted by the Healthcare contract.
const (
	RevertDuplicate = "Cannot register same hash."
	RevertNotFound  = "Healthcare data does not exist or already deleted."
)

// MockHealthcareClient provides an in-memory implementation of the
// interfaces.HealthcareRegistry interface for tests and dry runs.
// It enforces the same lifecycle rules as the contract and reports
// violations with the contract's revert reasons.
type MockHealthcareClient struct {
	mutex            sync.RWMutex
	records          map[interfaces.RecordHash]interfaces.HealthcareRecord
	events           []interfaces.RecordEvent
	pending          map[common.Hash]uint64 // tx hash -> block it was mined in
	nonce            uint64
	block            uint64
	now              func() time.Time
	allowTransacting bool
}

// NewMockHealthcareClient creates a new mock client with empty initial state.
// The client starts in a read-only state - call SetTransactOpts to enable transaction operations.
func NewMockHealthcareClient() *MockHealthcareClient {
	return &MockHealthcareClient{
		records: make(map[interfaces.RecordHash]interfaces.HealthcareRecord),
		pending: make(map[common.Hash]uint64),
		now:     time.Now,
	}
}

// SetTransactOpts enables transaction operations on the mock client.
func (m *MockHealthcareClient) SetTransactOpts() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.allowTransacting = true
}

// SetClock overrides the source of block timestamps.
func (m *MockHealthcareClient) SetClock(now func() time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.now = now
}

// GetHealthcareInfo returns the stored record or a zero Null record.
func (m *MockHealthcareClient) GetHealthcareInfo(_ context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.records[hash], nil
}

// RegisterHealthcare stores a new record. It fails with the contract's
// duplicate reason if the hash is in any non-Null state.
func (m *MockHealthcareClient) RegisterHealthcare(_ context.Context, hash interfaces.RecordHash, phoneNumber string, healthcareType interfaces.HealthcareType, hospital string) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return nil, ErrNoTransactOpts
	}

	if m.records[hash].Exists() {
		return nil, revertError(RevertDuplicate)
	}

	m.records[hash] = interfaces.HealthcareRecord{
		RegisteredDate: uint64(m.now().Unix()),
		PhoneNumber:    phoneNumber,
		Hospital:       hospital,
		Status:         interfaces.HealthcareRegistered,
		Type:           healthcareType,
	}
	return m.mine("LogRegisterHealthcare", hash), nil
}

// DeleteHealthcare marks a Registered record as Deleted, keeping its fields.
func (m *MockHealthcareClient) DeleteHealthcare(_ context.Context, hash interfaces.RecordHash) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return nil, ErrNoTransactOpts
	}

	record := m.records[hash]
	if record.Status != interfaces.HealthcareRegistered {
		return nil, revertError(RevertNotFound)
	}

	record.Status = interfaces.HealthcareDeleted
	record.DeletedDate = uint64(m.now().Unix())
	m.records[hash] = record
	return m.mine("LogDeleteHealthcare", hash), nil
}

// WaitMined returns a successful receipt for transactions created by this mock.
func (m *MockHealthcareClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	block, ok := m.pending[tx.Hash()]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(block),
	}, nil
}

// Events returns the events emitted since fromBlock.
func (m *MockHealthcareClient) Events(_ context.Context, fromBlock uint64) ([]interfaces.RecordEvent, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var events []interfaces.RecordEvent
	for _, ev := range m.events {
		if ev.BlockNumber >= fromBlock {
			events = append(events, ev)
		}
	}
	return events, nil
}

// mine creates a unique transaction for the state change and records its event.
// Must be called with the write lock held.
func (m *MockHealthcareClient) mine(eventName string, hash interfaces.RecordHash) *types.Transaction {
	m.nonce++
	m.block++

	tx := types.NewTx(&types.LegacyTx{
		Nonce: m.nonce,
		Data:  hash.Bytes(),
	})
	m.pending[tx.Hash()] = m.block
	m.events = append(m.events, interfaces.RecordEvent{
		Name:        eventName,
		Hash:        hash,
		BlockNumber: m.block,
		TxHash:      tx.Hash(),
	})
	return tx
}

func revertError(reason string) error {
	return fmt.Errorf("execution reverted: %s", reason)
}
