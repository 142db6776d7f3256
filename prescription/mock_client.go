package prescription

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Revert reasons emitted by the Prescription contract.
const (
	RevertDuplicate = "Cannot register same hash."
	RevertNotFound  = "Prescription does not exist or already used."
)

// MockPrescriptionClient is an in-memory interfaces.PrescriptionRegistry with
// the contract's lifecycle rules: Null -> Registered -> Used.
type MockPrescriptionClient struct {
	mutex            sync.RWMutex
	records          map[interfaces.RecordHash]interfaces.PrescriptionRecord
	events           []interfaces.RecordEvent
	mined            map[common.Hash]uint64
	nonce            uint64
	allowTransacting bool
}

// NewMockPrescriptionClient creates a new mock client with empty initial state.
func NewMockPrescriptionClient() *MockPrescriptionClient {
	return &MockPrescriptionClient{
		records: make(map[interfaces.RecordHash]interfaces.PrescriptionRecord),
		mined:   make(map[common.Hash]uint64),
	}
}

// SetTransactOpts enables transaction operations on the mock client.
func (m *MockPrescriptionClient) SetTransactOpts() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.allowTransacting = true
}

func (m *MockPrescriptionClient) GetPrescriptionInfo(_ context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.records[hash], nil
}

func (m *MockPrescriptionClient) RegisterPrescription(_ context.Context, hash interfaces.RecordHash, prescribeDate, endDate uint64, hospital string) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return nil, ErrNoTransactOpts
	}

	if m.records[hash].Exists() {
		return nil, fmt.Errorf("execution reverted: %s", RevertDuplicate)
	}

	m.records[hash] = interfaces.PrescriptionRecord{
		PrescribeDate: prescribeDate,
		EndDate:       endDate,
		Hospital:      hospital,
		Status:        interfaces.PrescriptionRegistered,
	}
	return m.mine("LogRegisterPrescription", hash), nil
}

func (m *MockPrescriptionClient) UsePrescription(_ context.Context, hash interfaces.RecordHash, prepareDate uint64, pharmacy string) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return nil, ErrNoTransactOpts
	}

	record := m.records[hash]
	if record.Status != interfaces.PrescriptionRegistered {
		return nil, fmt.Errorf("execution reverted: %s", RevertNotFound)
	}

	record.Status = interfaces.PrescriptionUsed
	record.PrepareDate = prepareDate
	record.Pharmacy = pharmacy
	m.records[hash] = record
	return m.mine("LogUsePrescription", hash), nil
}

func (m *MockPrescriptionClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	block, ok := m.mined[tx.Hash()]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(block),
	}, nil
}

func (m *MockPrescriptionClient) Events(_ context.Context, fromBlock uint64) ([]interfaces.RecordEvent, error) {
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

func (m *MockPrescriptionClient) mine(eventName string, hash interfaces.RecordHash) *types.Transaction {
	m.nonce++
	tx := types.NewTx(&types.LegacyTx{Nonce: m.nonce, Data: hash.Bytes()})
	m.mined[tx.Hash()] = m.nonce
	m.events = append(m.events, interfaces.RecordEvent{
		Name:        eventName,
		Hash:        hash,
		BlockNumber: m.nonce,
		TxHash:      tx.Hash(),
	})
	return tx
}
