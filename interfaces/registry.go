package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// HealthcareRegistry is the client view of the Healthcare contract.
//
// Read methods perform a synchronous call with no state change. Write methods
// submit a transaction and return it while still pending; callers must
// WaitMined before trusting the result.
type HealthcareRegistry interface {
	GetHealthcareInfo(ctx context.Context, hash RecordHash) (HealthcareRecord, error)
	RegisterHealthcare(ctx context.Context, hash RecordHash, phoneNumber string, healthcareType HealthcareType, hospital string) (*types.Transaction, error)
	DeleteHealthcare(ctx context.Context, hash RecordHash) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// PrescriptionRegistry is the client view of the Prescription contract.
type PrescriptionRegistry interface {
	GetPrescriptionInfo(ctx context.Context, hash RecordHash) (PrescriptionRecord, error)
	RegisterPrescription(ctx context.Context, hash RecordHash, prescribeDate, endDate uint64, hospital string) (*types.Transaction, error)
	UsePrescription(ctx context.Context, hash RecordHash, prepareDate uint64, pharmacy string) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// EventSource lists contract lifecycle events starting at a block.
type EventSource interface {
	Events(ctx context.Context, fromBlock uint64) ([]RecordEvent, error)
}

// TxJournal records submitted transactions and their outcome. It is purely
// informational and never consulted for business rules.
type TxJournal interface {
	// RecordSubmitted stores a pending entry and returns its id.
	RecordSubmitted(ctx context.Context, contract, operation string, hash RecordHash, txHash common.Hash) (string, error)

	// RecordOutcome marks the entry as confirmed in block, or failed when cause is non-nil.
	RecordOutcome(ctx context.Context, id string, block uint64, cause error) error
}
