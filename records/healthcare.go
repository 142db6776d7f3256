// Package records implements the record operations on top of the contract
// clients: input validation, submission, confirmation and result decoding.
package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// RegisterRequest describes a new healthcare record. A zero Hash asks the
// service to derive one from the current time.
type RegisterRequest struct {
	Hash     interfaces.RecordHash     `json:"hash"`
	Phone    string                    `json:"phoneNumber"`
	Type     interfaces.HealthcareType `json:"healthcareType"`
	Hospital string                    `json:"hospital"`
}

// HealthcareService runs register, delete and info against a HealthcareRegistry.
type HealthcareService struct {
	registry interfaces.HealthcareRegistry
	confirmer
}

// NewHealthcareService creates a service over registry. opts may be nil.
func NewHealthcareService(registry interfaces.HealthcareRegistry, log *slog.Logger, opts *ServiceOpts) *HealthcareService {
	return &HealthcareService{
		registry:  registry,
		confirmer: newConfirmer("healthcare", registry, log, opts),
	}
}

// Register validates req, submits RegisterHealthcare and waits for confirmation.
func (s *HealthcareService) Register(ctx context.Context, req RegisterRequest) (*Receipt, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number is required", interfaces.ErrValidation)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: healthcare type must be 0-3, got %d", interfaces.ErrValidation, req.Type)
	}

	hash := req.Hash
	if hash.IsZero() {
		hash = interfaces.HashFromTime("health", s.now())
	}

	tx, err := s.registry.RegisterHealthcare(ctx, hash, phone, req.Type, strings.TrimSpace(req.Hospital))
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", hash.String(), ClassifyRevert(err))
	}

	return s.confirm(ctx, "RegisterHealthcare", hash, tx)
}

// Delete submits DeleteHealthcare for hash and waits for confirmation.
func (s *HealthcareService) Delete(ctx context.Context, hash interfaces.RecordHash) (*Receipt, error) {
	if hash.IsZero() {
		return nil, fmt.Errorf("%w: hash is required", interfaces.ErrValidation)
	}

	tx, err := s.registry.DeleteHealthcare(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", hash.String(), ClassifyRevert(err))
	}

	return s.confirm(ctx, "DeleteHealthcare", hash, tx)
}

// GetInfo reads the record stored under hash. A Null record is a valid result.
func (s *HealthcareService) GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error) {
	if hash.IsZero() {
		return interfaces.HealthcareRecord{}, fmt.Errorf("%w: hash is required", interfaces.ErrValidation)
	}

	record, err := s.registry.GetHealthcareInfo(ctx, hash)
	if err != nil {
		return interfaces.HealthcareRecord{}, fmt.Errorf("get info %s: %w", hash.String(), ClassifyRevert(err))
	}
	return record, nil
}

// Demo phone number and hospital used by RunDemo.
const (
	DemoPhone    = "010-1234-5678"
	DemoHospital = "Demo Hospital"
)

// DemoStep is one stage of the demo sequence.
type DemoStep struct {
	Name    string                       `json:"name"`
	Receipt *Receipt                     `json:"receipt,omitempty"`
	Record  *interfaces.HealthcareRecord `json:"record,omitempty"`
}

// RunDemo registers a fresh record, reads it, deletes it and reads it again.
// Steps completed before a failure are returned along with the error.
func (s *HealthcareService) RunDemo(ctx context.Context) ([]DemoStep, error) {
	var steps []DemoStep

	hash := interfaces.HashFromTime("demo", s.now())

	receipt, err := s.Register(ctx, RegisterRequest{
		Hash:     hash,
		Phone:    DemoPhone,
		Type:     interfaces.HealthcareData,
		Hospital: DemoHospital,
	})
	if err != nil {
		return steps, err
	}
	steps = append(steps, DemoStep{Name: "register", Receipt: receipt})

	record, err := s.GetInfo(ctx, hash)
	if err != nil {
		return steps, err
	}
	steps = append(steps, DemoStep{Name: "info", Record: &record})

	receipt, err = s.Delete(ctx, hash)
	if err != nil {
		return steps, err
	}
	steps = append(steps, DemoStep{Name: "delete", Receipt: receipt})

	final, err := s.GetInfo(ctx, hash)
	if err != nil {
		return steps, err
	}
	steps = append(steps, DemoStep{Name: "verify", Record: &final})

	return steps, nil
}
