// Package flags holds the command line flags shared by the client binaries
// and the helpers that turn them into a logger, a configuration and a
// gateway config.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ruteri/healthcare-contract-client/common"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/httpserver"
)

const logServiceFlagName = "log-service"

// Logging.
var (
	LogJsonFlag = &cli.BoolFlag{
		Name:  "log-json",
		Usage: "log in JSON format",
	}
	LogDebugFlag = &cli.BoolFlag{
		Name:  "log-debug",
		Usage: "log debug messages",
	}
	LogUidFlag = &cli.BoolFlag{
		Name:  "log-uid",
		Usage: "tag every log line with a random per-process uuid",
	}

	LogFlags = []cli.Flag{LogJsonFlag, LogDebugFlag, LogUidFlag}
)

// LogServiceFlagFn returns the service tag flag defaulting to service.
func LogServiceFlagFn(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  logServiceFlagName,
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

// Contract clients. Each string flag overrides the configuration key named in
// its usage.
var (
	EnvFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Value: config.DefaultEnvFile,
		Usage: "path to the .env file",
	}
	NetworkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "network to use: 1/local, 2/sepolia, 3/mainnet or 4/custom. Prompts when empty in interactive mode",
	}
	RpcURLFlag = &cli.StringFlag{
		Name:  "rpc-url",
		Usage: "RPC endpoint of the custom network, overrides " + config.KeyRPCURL,
	}
	HealthcareContractFlag = &cli.StringFlag{
		Name:  "healthcare-contract",
		Usage: "Healthcare contract address, overrides " + config.KeyHealthcareContract,
	}
	PrescriptionContractFlag = &cli.StringFlag{
		Name:  "prescription-contract",
		Usage: "Prescription contract address, overrides " + config.KeyPrescriptionContract,
	}
	ArtifactURIFlag = &cli.StringFlag{
		Name:  "abi-artifact-uri",
		Usage: "comma separated file://, s3:// or ipfs:// locations of the Hardhat artifacts to verify the bindings against",
	}
	JournalFlag = &cli.StringFlag{
		Name:  "journal",
		Usage: "SQLite file recording submitted transactions, overrides " + config.KeyJournalPath,
	}
	ConfirmTimeoutFlag = &cli.StringFlag{
		Name:  "confirm-timeout",
		Usage: "maximum wait for a transaction to be mined, e.g. 2m. Waits indefinitely when empty",
	}
	DryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "run against an in-memory contract instead of a node",
	}

	ClientFlags = []cli.Flag{
		EnvFileFlag,
		NetworkFlag,
		RpcURLFlag,
		HealthcareContractFlag,
		PrescriptionContractFlag,
		ArtifactURIFlag,
		JournalFlag,
		ConfirmTimeoutFlag,
		DryRunFlag,
	}
)

// Gateway.
var (
	PprofFlag = &cli.BoolFlag{
		Name:  "pprof",
		Usage: "enable pprof debug endpoint",
	}
	DrainSecondsFlag = &cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 45,
		Usage: "seconds /drain keeps serving after readiness flips",
	}

	ServerFlags = []cli.Flag{PprofFlag, DrainSecondsFlag}
)

// ClientAppFlags returns a fresh slice with the global flags of a client binary.
func ClientAppFlags(service string) []cli.Flag {
	out := make([]cli.Flag, 0, len(LogFlags)+len(ClientFlags)+1)
	out = append(out, LogFlags...)
	out = append(out, LogServiceFlagFn(service))
	return append(out, ClientFlags...)
}

func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: cCtx.String(logServiceFlagName),
		Version: common.Version,
	})
	if cCtx.Bool(LogUidFlag.Name) {
		logger = logger.With("uid", uuid.NewString())
	}
	return logger
}

// LoadConfig resolves the configuration with the client flags as overrides.
// Unset flags resolve to "" and leave the lower layers in place.
func LoadConfig(cCtx *cli.Context) (*config.Config, error) {
	overrides := map[string]string{}
	for key, flag := range map[string]*cli.StringFlag{
		config.KeyRPCURL:               RpcURLFlag,
		config.KeyHealthcareContract:   HealthcareContractFlag,
		config.KeyPrescriptionContract: PrescriptionContractFlag,
		config.KeyABIArtifactURI:       ArtifactURIFlag,
		config.KeyJournalPath:          JournalFlag,
		config.KeyConfirmTimeout:       ConfirmTimeoutFlag,
	} {
		overrides[key] = cCtx.String(flag.Name)
	}

	return config.Load(config.LoadOptions{
		EnvFile:   cCtx.String(EnvFileFlag.Name),
		Overrides: overrides,
	})
}

// ConfigureServer builds the gateway config. Writes block until the
// transaction is mined, hence the long write timeout.
func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             5 * time.Minute,
	}
}
