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
		Name:     "hash",
		Required: true,
		Usage:    "prescription id; hashed with keccak256 unless 0x-prefixed 32-byte hex",
	}
	flagPrescribeDate = &cli.Uint64Flag{
		Name:  "prescribe-date",
		Usage: "prescribe date as unix seconds, now when omitted",
	}
	flagEndDate = &cli.Uint64Flag{
		Name:     "end-date",
		Required: true,
		Usage:    "last valid day as unix seconds",
	}
	flagHospital = &cli.StringFlag{
		Name:     "hospital",
		Required: true,
		Usage:    "prescribing hospital",
	}
	flagPrepareDate = &cli.Uint64Flag{
		Name:  "prepare-date",
		Usage: "dispensing date as unix seconds, now when omitted",
	}
	flagPharmacy = &cli.StringFlag{
		Name:     "pharmacy",
		Required: true,
		Usage:    "dispensing pharmacy",
	}
	flagFrom = &cli.Uint64Flag{
		Name:  "from",
		Usage: "first block to scan",
	}
	flagLimit = &cli.IntFlag{
		Name:  "limit",
		Value: 20,
		Usage: "maximum number of entries, 0 for all",
	}
)

type action func(ctx context.Context, sh *shell.Shell, svc *records.PrescriptionService, events interfaces.EventSource) error

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

		svc, events, err := session.PrescriptionService(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, sh, svc, events)
	}
}

func hashArg(cCtx *cli.Context) (interfaces.RecordHash, error) {
	return interfaces.ParseTextHash(cCtx.String(flagHash.Name))
}

func main() {
	app := &cli.App{
		Name:  "prescription-cli",
		Usage: "Register, use and inspect prescriptions on the Prescription contract",
		Flags: flags.ClientAppFlags("prescription-cli"),
		Action: run(true, true, func(ctx context.Context, sh *shell.Shell, svc *records.PrescriptionService, _ interfaces.EventSource) error {
			return sh.RunPrescription(ctx, svc)
		}),
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a prescription",
				Flags: []cli.Flag{flagHash, flagPrescribeDate, flagEndDate, flagHospital},
				Action: func(cCtx *cli.Context) error {
					hash, err := hashArg(cCtx)
					if err != nil {
						return err
					}
					req := records.PrescriptionRequest{
						Hash:          hash,
						PrescribeDate: cCtx.Uint64(flagPrescribeDate.Name),
						EndDate:       cCtx.Uint64(flagEndDate.Name),
						Hospital:      cCtx.String(flagHospital.Name),
					}
					return run(false, true, func(ctx context.Context, sh *shell.Shell, svc *records.PrescriptionService, _ interfaces.EventSource) error {
						receipt, err := svc.Register(ctx, req)
						if err != nil {
							return err
						}
						sh.Printf("Transaction hash: %s\n", receipt.TxHash.Hex())
						sh.Printf("Hash: %s\n", receipt.Hash.String())
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "use",
				Usage: "Mark a prescription as dispensed",
				Flags: []cli.Flag{flagHash, flagPrepareDate, flagPharmacy},
				Action: func(cCtx *cli.Context) error {
					hash, err := hashArg(cCtx)
					if err != nil {
						return err
					}
					req := records.UseRequest{
						Hash:        hash,
						PrepareDate: cCtx.Uint64(flagPrepareDate.Name),
						Pharmacy:    cCtx.String(flagPharmacy.Name),
					}
					return run(false, true, func(ctx context.Context, sh *shell.Shell, svc *records.PrescriptionService, _ interfaces.EventSource) error {
						receipt, err := svc.Use(ctx, req)
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
				Usage: "Show prescription info",
				Flags: []cli.Flag{flagHash},
				Action: func(cCtx *cli.Context) error {
					hash, err := hashArg(cCtx)
					if err != nil {
						return err
					}
					return run(false, false, func(ctx context.Context, sh *shell.Shell, svc *records.PrescriptionService, _ interfaces.EventSource) error {
						record, err := svc.GetInfo(ctx, hash)
						if err != nil {
							return err
						}
						sh.PrintPrescriptionRecord(record)
						return nil
					})(cCtx)
				},
			},
			{
				Name:  "events",
				Usage: "List LogRegisterPrescription and LogUsePrescription events",
				Flags: []cli.Flag{flagFrom},
				Action: func(cCtx *cli.Context) error {
					from := cCtx.Uint64(flagFrom.Name)
					return run(false, false, func(ctx context.Context, sh *shell.Shell, _ *records.PrescriptionService, events interfaces.EventSource) error {
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
				Flags: []cli.Flag{flagLimit},
				Action: func(cCtx *cli.Context) error {
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

					entries, err := j.List(cCtx.Context, journal.Filter{Contract: "prescription", Limit: cCtx.Int(flagLimit.Name)})
					if err != nil {
						return fmt.Errorf("could not read journal: %w", err)
					}
					shell.New(os.Stdin, os.Stdout).PrintHistory(entries)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
