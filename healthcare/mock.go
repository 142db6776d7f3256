package healthcare

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// MockHealthcareRegistry mocks the HealthcareRegistry interface
type MockHealthcareRegistry struct {
	mock.Mock
}

// GetHealthcareInfo mocks the GetHealthcareInfo method
func (m *MockHealthcareRegistry) GetHealthcareInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(interfaces.HealthcareRecord), args.Error(1)
}

// RegisterHealthcare mocks the RegisterHealthcare method
func (m *MockHealthcareRegistry) RegisterHealthcare(ctx context.Context, hash interfaces.RecordHash, phoneNumber string, healthcareType interfaces.HealthcareType, hospital string) (*types.Transaction, error) {
	args := m.Called(ctx, hash, phoneNumber, healthcareType, hospital)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// DeleteHealthcare mocks the DeleteHealthcare method
func (m *MockHealthcareRegistry) DeleteHealthcare(ctx context.Context, hash interfaces.RecordHash) (*types.Transaction, error) {
	args := m.Called(ctx, hash)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// WaitMined mocks the WaitMined method
func (m *MockHealthcareRegistry) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	receipt, _ := args.Get(0).(*types.Receipt)
	return receipt, args.Error(1)
}
