package prescription

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// MockPrescriptionRegistry mocks the PrescriptionRegistry interface
type MockPrescriptionRegistry struct {
	mock.Mock
}

// GetPrescriptionInfo mocks the GetPrescriptionInfo method
func (m *MockPrescriptionRegistry) GetPrescriptionInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(interfaces.PrescriptionRecord), args.Error(1)
}

// RegisterPrescription mocks the RegisterPrescription method
func (m *MockPrescriptionRegistry) RegisterPrescription(ctx context.Context, hash interfaces.RecordHash, prescribeDate, endDate uint64, hospital string) (*types.Transaction, error) {
	args := m.Called(ctx, hash, prescribeDate, endDate, hospital)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// UsePrescription mocks the UsePrescription method
func (m *MockPrescriptionRegistry) UsePrescription(ctx context.Context, hash interfaces.RecordHash, prepareDate uint64, pharmacy string) (*types.Transaction, error) {
	args := m.Called(ctx, hash, prepareDate, pharmacy)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// WaitMined mocks the WaitMined method
func (m *MockPrescriptionRegistry) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	receipt, _ := args.Get(0).(*types.Receipt)
	return receipt, args.Error(1)
}
