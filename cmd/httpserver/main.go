package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/healthcare-contract-client/cmd/clientcommon"
	"github.com/ruteri/healthcare-contract-client/cmd/flags"
	"github.com/ruteri/healthcare-contract-client/httpserver"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

var flagListenAddr = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}

func main() {
	app := &cli.App{
		Name:  "httpserver",
		Usage: "Serve the Healthcare and Prescription contracts over HTTP",
		Flags: append(append(flags.ClientAppFlags("httpserver"), flagListenAddr), flags.ServerFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)
			ctx := cCtx.Context

			network, err := clientcommon.ResolveNetwork(cCtx, nil)
			if err != nil {
				return err
			}

			session, err := clientcommon.Open(ctx, cCtx, network, false, logger)
			if err != nil {
				logger.Error("Failed to open session", "err", err)
				return err
			}
			defer session.Close()

			var backends httpserver.Backends
			if j := session.Journal(); j != nil {
				backends.History = j
			}

			// Either contract may be left unconfigured; its routes then answer 503.
			healthcareSvc, healthcareEvents, err := session.HealthcareService(ctx)
			switch {
			case err == nil:
				backends.Healthcare, backends.HealthcareEvents = healthcareSvc, healthcareEvents
			case errors.Is(err, interfaces.ErrMissingConfig):
				logger.Warn("Healthcare contract disabled", "err", err)
			default:
				logger.Error("Failed to set up healthcare contract", "err", err)
				return err
			}

			prescriptionSvc, prescriptionEvents, err := session.PrescriptionService(ctx)
			switch {
			case err == nil:
				backends.Prescription, backends.PrescriptionEvents = prescriptionSvc, prescriptionEvents
			case errors.Is(err, interfaces.ErrMissingConfig):
				logger.Warn("Prescription contract disabled", "err", err)
			default:
				logger.Error("Failed to set up prescription contract", "err", err)
				return err
			}

			if backends.Healthcare == nil && backends.Prescription == nil {
				return errors.New("neither HEALTHCARE_CONTRACT_ADDRESS nor PRESCRIPTION_CONTRACT_ADDRESS is configured")
			}

			cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(flagListenAddr.Name))
			server, err := httpserver.New(cfg, httpserver.NewHandler(backends, logger))
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server", "network", network.Name)
			server.RunInBackground()

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
