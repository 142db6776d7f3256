package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/healthcare-contract-client/cmd/clientcommon"
	"github.com/ruteri/healthcare-contract-client/cmd/flags"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/journal"
	"github.com/ruteri/healthcare-contract-client/records"
	"github.com/ruteri/healthcare-contract-client/shell"
)

var (
	flagHash = &cli.StringFlag{
		Name:  "hash",
		Usage: "record hash: text of up to 31 bytes or 0x-prefixed 32-byte hex",
	}
	flagPhone = &cli.StringFlag{
		Name:     "phone",
		Required: true,
		Usage:    "phone number",
	}
	flagType = &cli.UintFlag{
		Name:  "type",
		Value: 0,
		Usage: "healthcare type: 0 healthcareData, 1 healthcareReport, 2 dataToHospital, 3 reportToHospital",
	}
	flagHospital = &cli.StringFlag{
		Name:  "hospital",
		Usage: "hospital name",
	}
	flagFrom = &cli.Uint64Flag{
		Name:  "from",
		Value: 0,
		Usage: "first block to scan",
	}
	flagLimit = &cli.IntFlag{
		Name:  "limit",
		Value: 20,
		Usage: "maximum number of entries, 0 for all",
	}
)

type action func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, events interfaces.EventSource) error

// run opens a session on the selected network and runs fn with the
// healthcare service. Interactive runs prompt for the network.
func run(interactive, needSigner bool, fn action) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		logger := flags.SetupLogger(cCtx)
		ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		sh := shell.New(os.Stdin, os.Stdout)

		var selector clientcommon.NetworkSelector
		if interactive {
			selector = sh
		}
		network, err := clientcommon.ResolveNetwork(cCtx, selector)
		if err != nil {
			return err
		}

		session, err := clientcommon.Open(ctx, cCtx, network, needSigner, logger)
		if err != nil {
			return err
		}
		defer session.Close()

		svc, events, err := session.HealthcareService(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, sh, svc, events)
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "healthcare-cli",
		Usage: "Register, delete and inspect records on the Healthcare contract",
		Flags: flags.ClientAppFlags("healthcare-cli"),
		Action: run(true, true, func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, _ interfaces.EventSource) error {
			return sh.RunHealthcare(ctx, svc)
		}),
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register healthcare data",
				Flags: []cli.Flag{flagHash, flagPhone, flagType, flagHospital},
				Action: func(cCtx *cli.Context) error {
					req, err := registerRequest(cCtx)
					if err != nil {
						return err
					}
					return run(false, true, func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, _ interfaces.EventSource) error {
						receipt, err := svc.Register(ctx, req)
						if err != nil {
							return err
						}
						sh.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
						sh.Printf("Hash: %s\n", receipt.Hash.Display())
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete healthcare data",
				Flags: []cli.Flag{requiredHash()},
				Action: func(cCtx *cli.Context) error {
					hash, err := interfaces.ParseRecordHash(cCtx.String(flagHash.Name))
					if err != nil {
						return err
					}
					return run(false, true, func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, _ interfaces.EventSource) error {
						receipt, err := svc.Delete(ctx, hash)
						if err != nil {
							return err
						}
						sh.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "info",
				Usage: "Show healthcare info",
				Flags: []cli.Flag{requiredHash()},
				Action: func(cCtx *cli.Context) error {
					hash, err := interfaces.ParseRecordHash(cCtx.String(flagHash.Name))
					if err != nil {
						return err
					}
					return run(false, false, func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, _ interfaces.EventSource) error {
						record, err := svc.GetInfo(ctx, hash)
						if err != nil {
							return err
						}
						sh.PrintHealthcareRecord(record)
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "types",
				Usage: "List healthcare types",
				Action: func(cCtx *cli.Context) error {
					shell.New(os.Stdin, os.Stdout).ShowHealthcareTypes()
					return nil
				},
			},
			{
				Name:  "demo",
				Usage: "Register, read, delete and re-read a generated record",
				Action: run(false, true, func(ctx context.Context, sh *shell.Shell, svc *records.HealthcareService, _ interfaces.EventSource) error {
					steps, err := svc.RunDemo(ctx)
					for _, step := range steps {
						if step.Record != nil {
							sh.Printf("%s: %s\n", step.Name, step.Record.Status)
						} else if step.Receipt != nil {
							sh.Printf("%s: tx %s\n", step.Name, step.Receipt.TxHash.Hex())
						}
					}
					return err
				}),
			},
			{
				Name:  "events",
				Usage: "List LogRegisterHealthcare and LogDeleteHealthcare events",
				Flags: []cli.Flag{flagFrom},
				Action: func(cCtx *cli.Context) error {
					from := cCtx.Uint64(flagFrom.Name)
					return run(false, false, func(ctx context.Context, sh *shell.Shell, _ *records.HealthcareService, events interfaces.EventSource) error {
						list, err := events.Events(ctx, from)
						if err != nil {
							return err
						}
						sh.PrintEvents(list)
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "history",
				Usage: "List transactions recorded in the journal",
				Flags: []cli.Flag{flagHash, flagLimit},
				Action: func(cCtx *cli.Context) error {
					filter := journal.Filter{Contract: "healthcare", Limit: cCtx.Int(flagLimit.Name)}
					if raw := cCtx.String(flagHash.Name); raw != "" {
						hash, err := interfaces.ParseRecordHash(raw)
						if err != nil {
							return err
						}
						filter.Hash = hash
					}
					return printHistory(cCtx, filter)
				},
			},
		},
	}
}

// registerRequest reads the register flags. The type is range checked
// before narrowing to uint8 so that e.g. 256 cannot wrap around to 0.
func registerRequest(cCtx *cli.Context) (records.RegisterRequest, error) {
	rawType := cCtx.Uint(flagType.Name)
	if rawType > uint(interfaces.ReportToHospital) {
		return records.RegisterRequest{}, fmt.Errorf("%w: healthcare type %d is not in 0-%d", interfaces.ErrValidation, rawType, uint8(interfaces.ReportToHospital))
	}

	req := records.RegisterRequest{
		Phone:    cCtx.String(flagPhone.Name),
		Type:     interfaces.HealthcareType(rawType),
		Hospital: cCtx.String(flagHospital.Name),
	}
	if raw := cCtx.String(flagHash.Name); raw != "" {
		hash, err := interfaces.ParseRecordHash(raw)
		if err != nil {
			return records.RegisterRequest{}, err
		}
		req.Hash = hash
	}
	return req, nil
}

func requiredHash() cli.Flag {
	f := *flagHash
	f.Required = true
	return &f
}

// printHistory reads the journal without connecting to a node.
func printHistory(cCtx *cli.Context, filter journal.Filter) error {
	logger := flags.SetupLogger(cCtx)
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	if err := cfg.Require(config.KeyJournalPath); err != nil {
		return err
	}

	j, err := journal.Open(cfg.JournalPath, logger)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(cCtx.Context, filter)
	if err != nil {
		return fmt.Errorf("could not read journal: %w", err)
	}
	shell.New(os.Stdin, os.Stdout).PrintHistory(entries)
	return nil
}
