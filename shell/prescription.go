package shell

import (
	"context"
	"strconv"

	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/records"
)

// PrescriptionService is the subset of records.PrescriptionService the menu uses.
type PrescriptionService interface {
	Register(ctx context.Context, req records.PrescriptionRequest) (*records.Receipt, error)
	Use(ctx context.Context, req records.UseRequest) (*records.Receipt, error)
	GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error)
}

// RunPrescription runs the prescription menu until Exit or end of input.
func (s *Shell) RunPrescription(ctx context.Context, svc PrescriptionService) error {
	return s.runMenu(ctx, "Prescription Smart Contract CLI", []menuItem{
		{"Register Prescription", func(ctx context.Context) error { return s.registerPrescription(ctx, svc) }},
		{"Use Prescription", func(ctx context.Context) error { return s.usePrescription(ctx, svc) }},
		{"Get Prescription Info", func(ctx context.Context) error { return s.prescriptionInfo(ctx, svc) }},
		{"Exit", nil},
	})
}

func (s *Shell) registerPrescription(ctx context.Context, svc PrescriptionService) error {
	s.Println("\nRegister Prescription")
	s.Println("=====================")

	hash, ok, err := s.promptHash("Enter prescription hash: ", interfaces.ParseTextHash)
	if err != nil || !ok {
		return err
	}
	req := records.PrescriptionRequest{Hash: hash}

	if req.PrescribeDate, ok, err = s.promptTimestamp("Enter prescribe date (unix timestamp, Enter for now): "); err != nil || !ok {
		return err
	}
	if req.EndDate, ok, err = s.promptTimestamp("Enter end date (unix timestamp): "); err != nil || !ok {
		return err
	}
	if req.EndDate == 0 {
		s.Println("End date is required!")
		return nil
	}
	if req.Hospital, err = s.Prompt("Enter hospital name: "); err != nil {
		return err
	}

	s.Println("\nRegistering prescription...")
	receipt, err := svc.Register(ctx, req)
	if err != nil {
		return s.report(ctx, "registering prescription", err)
	}

	s.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
	s.Println("Prescription registered!")
	s.Printf("Hash: %s\n", receipt.Hash.String())
	return nil
}

func (s *Shell) usePrescription(ctx context.Context, svc PrescriptionService) error {
	s.Println("\nUse Prescription")
	s.Println("================")

	hash, ok, err := s.promptHash("Enter prescription hash: ", interfaces.ParseTextHash)
	if err != nil || !ok {
		return err
	}
	req := records.UseRequest{Hash: hash}

	if req.PrepareDate, ok, err = s.promptTimestamp("Enter prepare date (unix timestamp, Enter for now): "); err != nil || !ok {
		return err
	}
	if req.Pharmacy, err = s.Prompt("Enter pharmacy name: "); err != nil {
		return err
	}

	s.Println("\nUsing prescription...")
	receipt, err := svc.Use(ctx, req)
	if err != nil {
		return s.report(ctx, "using prescription", err)
	}

	s.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
	s.Println("Prescription used!")
	return nil
}

func (s *Shell) prescriptionInfo(ctx context.Context, svc PrescriptionService) error {
	s.Println("\nGet Prescription Info")
	s.Println("=====================")

	hash, ok, err := s.promptHash("Enter prescription hash: ", interfaces.ParseTextHash)
	if err != nil || !ok {
		return err
	}

	record, err := svc.GetInfo(ctx, hash)
	if err != nil {
		return s.report(ctx, "fetching prescription info", err)
	}

	s.PrintPrescriptionRecord(record)
	return nil
}

// PrintPrescriptionRecord renders a prescription record.
func (s *Shell) PrintPrescriptionRecord(record interfaces.PrescriptionRecord) {
	pharmacy := record.Pharmacy
	if pharmacy == "" {
		pharmacy = "Not specified"
	}

	s.Println("\nPrescription Information:")
	s.Println("==========================")
	s.Printf("Prescribe Date: %s\n", interfaces.FormatUnix(record.PrescribeDate, "Not registered"))
	s.Printf("End Date: %s\n", interfaces.FormatUnix(record.EndDate, "-"))
	s.Printf("Prepare Date: %s\n", interfaces.FormatUnix(record.PrepareDate, "Not used"))
	s.Printf("Hospital: %s\n", record.Hospital)
	s.Printf("Pharmacy: %s\n", pharmacy)
	s.Printf("Status: %s\n", record.Status)
}

// promptTimestamp reads an optional unix timestamp; empty input is zero.
func (s *Shell) promptTimestamp(prompt string) (uint64, bool, error) {
	input, err := s.Prompt(prompt)
	if err != nil {
		return 0, false, err
	}
	if input == "" {
		return 0, true, nil
	}
	ts, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		s.Println("Invalid timestamp!")
		return 0, false, nil
	}
	return ts, true, nil
}
