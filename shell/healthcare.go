package shell

import (
	"context"
	"strconv"

	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/records"
)

// HealthcareService is the subset of records.HealthcareService the menu uses.
type HealthcareService interface {
	Register(ctx context.Context, req records.RegisterRequest) (*records.Receipt, error)
	Delete(ctx context.Context, hash interfaces.RecordHash) (*records.Receipt, error)
	GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error)
	RunDemo(ctx context.Context) ([]records.DemoStep, error)
}

// RunHealthcare runs the healthcare menu until Exit or end of input.
func (s *Shell) RunHealthcare(ctx context.Context, svc HealthcareService) error {
	return s.runMenu(ctx, "Healthcare Smart Contract CLI", []menuItem{
		{"Register Healthcare Data", func(ctx context.Context) error { return s.registerHealthcare(ctx, svc) }},
		{"Delete Healthcare Data", func(ctx context.Context) error { return s.deleteHealthcare(ctx, svc) }},
		{"Get Healthcare Info", func(ctx context.Context) error { return s.healthcareInfo(ctx, svc) }},
		{"Show Healthcare Types", func(context.Context) error { s.ShowHealthcareTypes(); return nil }},
		{"Quick Demo", func(ctx context.Context) error { return s.quickDemo(ctx, svc) }},
		{"Exit", nil},
	})
}

func (s *Shell) registerHealthcare(ctx context.Context, svc HealthcareService) error {
	s.Println("\nRegister Healthcare Data")
	s.Println("==========================")

	var req records.RegisterRequest

	hashInput, err := s.Prompt("Enter healthcare hash (or press Enter for auto-generate): ")
	if err != nil {
		return err
	}
	if hashInput != "" {
		if req.Hash, err = interfaces.ParseRecordHash(hashInput); err != nil {
			return s.report(ctx, "registering healthcare data", err)
		}
	}

	if req.Phone, err = s.Prompt("Enter phone number: "); err != nil {
		return err
	}
	if req.Phone == "" {
		s.Println("Phone number is required!")
		return nil
	}

	s.Println("\nHealthcare Types:")
	s.printTypes()
	typeInput, err := s.Prompt("Enter healthcare type (0-3): ")
	if err != nil {
		return err
	}
	typ, err := strconv.ParseUint(typeInput, 10, 8)
	if err != nil || !interfaces.HealthcareType(typ).Valid() {
		s.Println("Invalid healthcare type!")
		return nil
	}
	req.Type = interfaces.HealthcareType(typ)

	if req.Hospital, err = s.Prompt("Enter hospital name (optional): "); err != nil {
		return err
	}

	s.Println("\nRegistering healthcare data...")
	receipt, err := svc.Register(ctx, req)
	if err != nil {
		return s.report(ctx, "registering healthcare data", err)
	}

	s.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
	s.Println("Healthcare data registered successfully!")
	s.Printf("Hash: %s\n", receipt.Hash.Display())
	return nil
}

func (s *Shell) deleteHealthcare(ctx context.Context, svc HealthcareService) error {
	s.Println("\nDelete Healthcare Data")
	s.Println("=======================")

	hash, ok, err := s.promptHash("Enter healthcare hash to delete: ", interfaces.ParseRecordHash)
	if err != nil || !ok {
		return err
	}

	s.Println("\nDeleting healthcare data...")
	receipt, err := svc.Delete(ctx, hash)
	if err != nil {
		return s.report(ctx, "deleting healthcare data", err)
	}

	s.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
	s.Println("Healthcare data deleted successfully!")
	return nil
}

func (s *Shell) healthcareInfo(ctx context.Context, svc HealthcareService) error {
	s.Println("\nGet Healthcare Info")
	s.Println("=====================")

	hash, ok, err := s.promptHash("Enter healthcare hash: ", interfaces.ParseRecordHash)
	if err != nil || !ok {
		return err
	}

	s.Println("\nFetching healthcare info...")
	record, err := svc.GetInfo(ctx, hash)
	if err != nil {
		return s.report(ctx, "fetching healthcare info", err)
	}

	s.PrintHealthcareRecord(record)
	return nil
}

func (s *Shell) quickDemo(ctx context.Context, svc HealthcareService) error {
	s.Println("\nRunning Quick Demo...")

	steps, err := svc.RunDemo(ctx)
	for _, step := range steps {
		switch step.Name {
		case "register":
			s.Println("Registered successfully!")
		case "info":
			s.Printf("Phone: %s, Hospital: %s\n", step.Record.PhoneNumber, step.Record.Hospital)
		case "delete":
			s.Println("Deleted successfully!")
		case "verify":
			s.Printf("Final Status: %s\n", step.Record.Status)
		}
	}
	if err != nil {
		return s.report(ctx, "running demo", err)
	}

	s.Println("\nDemo completed successfully!")
	if len(steps) > 0 && steps[0].Receipt != nil {
		s.Printf("Test Hash: %s\n", steps[0].Receipt.Hash.Display())
	}
	return nil
}

// ShowHealthcareTypes lists the type codes.
func (s *Shell) ShowHealthcareTypes() {
	s.Println("\nHealthcare Types")
	s.Println("==================")
	s.printTypes()
}

func (s *Shell) printTypes() {
	for _, t := range interfaces.HealthcareTypes {
		s.Printf("%d: %s\n", uint8(t), t)
	}
}

// PrintHealthcareRecord renders a record the way every front-end shows it.
func (s *Shell) PrintHealthcareRecord(record interfaces.HealthcareRecord) {
	hospital := record.Hospital
	if hospital == "" {
		hospital = "Not specified"
	}

	s.Println("\nHealthcare Information:")
	s.Println("==========================")
	s.Printf("Registered Date: %s\n", interfaces.FormatUnix(record.RegisteredDate, "Not registered"))
	s.Printf("Deleted Date: %s\n", interfaces.FormatUnix(record.DeletedDate, "Not deleted"))
	s.Printf("Phone Number: %s\n", record.PhoneNumber)
	s.Printf("Hospital: %s\n", hospital)
	s.Printf("Status: %s\n", record.Status)
	s.Printf("Type: %s\n", record.Type)
}

// promptHash reads a required hash. ok is false when the input was empty or
// invalid; the problem has then already been printed.
func (s *Shell) promptHash(prompt string, parse func(string) (interfaces.RecordHash, error)) (interfaces.RecordHash, bool, error) {
	input, err := s.Prompt(prompt)
	if err != nil {
		return interfaces.RecordHash{}, false, err
	}
	if input == "" {
		s.Println("Hash is required!")
		return interfaces.RecordHash{}, false, nil
	}

	hash, err := parse(input)
	if err != nil {
		s.Printf("Invalid hash: %v\n", err)
		return interfaces.RecordHash{}, false, nil
	}
	return hash, true, nil
}
