package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// PrescriptionRequest describes a new prescription. Dates are unix seconds;
// a zero PrescribeDate means now.
type PrescriptionRequest struct {
	Hash          interfaces.RecordHash `json:"hash"`
	PrescribeDate uint64                `json:"prescribeDate"`
	EndDate       uint64                `json:"endDate"`
	Hospital      string                `json:"hospital"`
}

// UseRequest marks a prescription as dispensed. A zero PrepareDate means now.
type UseRequest struct {
	Hash        interfaces.RecordHash `json:"hash"`
	PrepareDate uint64                `json:"prepareDate"`
	Pharmacy    string                `json:"pharmacy"`
}

// PrescriptionService runs register, use and info against a PrescriptionRegistry.
type PrescriptionService struct {
	registry interfaces.PrescriptionRegistry
	confirmer
}

// NewPrescriptionService creates a service over registry. opts may be nil.
func NewPrescriptionService(registry interfaces.PrescriptionRegistry, log *slog.Logger, opts *ServiceOpts) *PrescriptionService {
	return &PrescriptionService{
		registry:  registry,
		confirmer: newConfirmer("prescription", registry, log, opts),
	}
}

// Register validates req, submits RegisterPrescription and waits for confirmation.
func (s *PrescriptionService) Register(ctx context.Context, req PrescriptionRequest) (*Receipt, error) {
	if req.Hash.IsZero() {
		return nil, fmt.Errorf("%w: hash is required", interfaces.ErrValidation)
	}
	hospital := strings.TrimSpace(req.Hospital)
	if hospital == "" {
		return nil, fmt.Errorf("%w: hospital is required", interfaces.ErrValidation)
	}

	prescribed := req.PrescribeDate
	if prescribed == 0 {
		prescribed = uint64(s.now().Unix())
	}
	if req.EndDate < prescribed {
		return nil, fmt.Errorf("%w: end date must not precede prescribe date", interfaces.ErrValidation)
	}

	tx, err := s.registry.RegisterPrescription(ctx, req.Hash, prescribed, req.EndDate, hospital)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Hash.String(), ClassifyRevert(err))
	}

	return s.confirm(ctx, "RegisterPrescription", req.Hash, tx)
}

// Use validates req, submits UsePrescription and waits for confirmation.
func (s *PrescriptionService) Use(ctx context.Context, req UseRequest) (*Receipt, error) {
	if req.Hash.IsZero() {
		return nil, fmt.Errorf("%w: hash is required", interfaces.ErrValidation)
	}
	pharmacy := strings.TrimSpace(req.Pharmacy)
	if pharmacy == "" {
		return nil, fmt.Errorf("%w: pharmacy is required", interfaces.ErrValidation)
	}

	prepared := req.PrepareDate
	if prepared == 0 {
		prepared = uint64(s.now().Unix())
	}

	tx, err := s.registry.UsePrescription(ctx, req.Hash, prepared, pharmacy)
	if err != nil {
		return nil, fmt.Errorf("use %s: %w", req.Hash.String(), ClassifyRevert(err))
	}

	return s.confirm(ctx, "UsePrescription", req.Hash, tx)
}

// GetInfo reads the prescription stored under hash. A Null record is a valid result.
func (s *PrescriptionService) GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error) {
	if hash.IsZero() {
		return interfaces.PrescriptionRecord{}, fmt.Errorf("%w: hash is required", interfaces.ErrValidation)
	}

	record, err := s.registry.GetPrescriptionInfo(ctx, hash)
	if err != nil {
		return interfaces.PrescriptionRecord{}, fmt.Errorf("get info %s: %w", hash.String(), ClassifyRevert(err))
	}
	return record, nil
}
