package clientcommon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/urfave/cli/v2"

	"github.com/ruteri/healthcare-contract-client/artifacts"
	bindhealthcare "github.com/ruteri/healthcare-contract-client/bindings/healthcare"
	bindprescription "github.com/ruteri/healthcare-contract-client/bindings/prescription"
	"github.com/ruteri/healthcare-contract-client/chain"
	"github.com/ruteri/healthcare-contract-client/cmd/flags"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/healthcare"
	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/journal"
	"github.com/ruteri/healthcare-contract-client/prescription"
	"github.com/ruteri/healthcare-contract-client/records"
)

// NetworkSelector asks the user for a network when none was given.
type NetworkSelector interface {
	SelectNetwork(networks []chain.Network) (chain.Network, error)
}

// ResolveNetwork returns the network named by --network. When the flag is
// empty it asks selector, or, when selector is nil, dials the configured
// RPC_URL (--rpc-url, the environment or .env, else the local node).
func ResolveNetwork(cCtx *cli.Context, selector NetworkSelector) (chain.Network, error) {
	if choice := cCtx.String(flags.NetworkFlag.Name); choice != "" {
		return chain.LookupNetwork(choice)
	}
	if selector == nil {
		return chain.Custom, nil
	}
	return selector.SelectNetwork(chain.Networks)
}

// Session holds what every contract client of one process shares: the
// configuration, the node connection and signer, and the optional journal.
type Session struct {
	Config  *config.Config
	Network chain.Network
	DryRun  bool

	conn    *chain.Connection
	auth    *bind.TransactOpts
	journal *journal.Journal
	log     *slog.Logger
}

// Open connects to network unless --dry-run is set. With needSigner a
// missing signing identity is fatal; otherwise the session is read-only
// and writes fail with interfaces.ErrNoTransactOpts.
func Open(ctx context.Context, cCtx *cli.Context, network chain.Network, needSigner bool, log *slog.Logger) (*Session, error) {
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config:  cfg,
		Network: network,
		DryRun:  cCtx.Bool(flags.DryRunFlag.Name),
		log:     log,
	}

	if cfg.JournalPath != "" {
		s.journal, err = journal.Open(cfg.JournalPath, log)
		if err != nil {
			return nil, err
		}
	}

	if s.DryRun {
		log.Info("dry run, using in-memory contracts")
		return s, nil
	}

	log.Info("connecting", "network", network.Name)
	s.conn, err = chain.Connect(ctx, network, cfg, log)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.auth, err = s.conn.Transactor(ctx, cfg)
	if err != nil {
		if needSigner || !errors.Is(err, interfaces.ErrNoSigner) {
			s.Close()
			return nil, err
		}
		log.Warn("no signer available, writes are disabled", "err", err)
	}

	return s, nil
}

// Journal returns the transaction journal, nil when JOURNAL_PATH is unset.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// ServiceOpts returns the options shared by both record services.
func (s *Session) ServiceOpts() *records.ServiceOpts {
	opts := &records.ServiceOpts{ConfirmTimeout: s.Config.ConfirmTimeout}
	// A nil *journal.Journal must not become a non-nil interface.
	if s.journal != nil {
		opts.Journal = s.journal
	}
	return opts
}

// HealthcareClient returns the registry and event source for the healthcare
// contract, verified against the configured artifact when there is one.
func (s *Session) HealthcareClient(ctx context.Context) (interfaces.HealthcareRegistry, interfaces.EventSource, error) {
	if s.DryRun {
		mock := healthcare.NewMockHealthcareClient()
		mock.SetTransactOpts()
		return mock, mock, nil
	}

	address, err := s.Config.HealthcareAddress()
	if err != nil {
		return nil, nil, err
	}
	if err := s.verifyArtifact(ctx, "Healthcare", bindhealthcare.HealthcareMetaData); err != nil {
		return nil, nil, err
	}

	client, err := healthcare.NewHealthcareFactory(s.conn.Backend(), s.conn.Client, s.auth).HealthcareFor(interfaces.ContractAddress(address))
	if err != nil {
		return nil, nil, err
	}
	if err := client.CheckDeployed(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s on %s: %w", address.Hex(), s.Network.Name, err)
	}

	s.log.Info("healthcare contract ready", "address", address.Hex())
	return client, client, nil
}

// PrescriptionClient is HealthcareClient for the prescription contract.
func (s *Session) PrescriptionClient(ctx context.Context) (interfaces.PrescriptionRegistry, interfaces.EventSource, error) {
	if s.DryRun {
		mock := prescription.NewMockPrescriptionClient()
		mock.SetTransactOpts()
		return mock, mock, nil
	}

	address, err := s.Config.PrescriptionAddress()
	if err != nil {
		return nil, nil, err
	}
	if err := s.verifyArtifact(ctx, "Prescription", bindprescription.PrescriptionMetaData); err != nil {
		return nil, nil, err
	}

	client, err := prescription.NewOnchainPrescriptionClient(s.conn.Backend(), s.conn.Client, address)
	if err != nil {
		return nil, nil, err
	}
	if s.auth != nil {
		client.SetTransactOpts(s.auth)
	}
	if err := client.CheckDeployed(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s on %s: %w", address.Hex(), s.Network.Name, err)
	}

	s.log.Info("prescription contract ready", "address", address.Hex())
	return client, client, nil
}

// HealthcareService wires a records.HealthcareService to the session.
func (s *Session) HealthcareService(ctx context.Context) (*records.HealthcareService, interfaces.EventSource, error) {
	registry, events, err := s.HealthcareClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records.NewHealthcareService(registry, s.log, s.ServiceOpts()), events, nil
}

// PrescriptionService wires a records.PrescriptionService to the session.
func (s *Session) PrescriptionService(ctx context.Context) (*records.PrescriptionService, interfaces.EventSource, error) {
	registry, events, err := s.PrescriptionClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records.NewPrescriptionService(registry, s.log, s.ServiceOpts()), events, nil
}

func (s *Session) verifyArtifact(ctx context.Context, contract string, meta *bind.MetaData) error {
	if s.Config.ABIArtifactURI == "" {
		return nil
	}

	source, err := artifacts.NewSourceFactory(s.log).SourceForURIs(s.Config.ABIArtifactURI)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", interfaces.ErrInvalidConfig, config.KeyABIArtifactURI, err)
	}

	expected, err := meta.GetAbi()
	if err != nil {
		return err
	}
	return artifacts.Verify(ctx, source, contract, expected, s.log)
}

// Close releases the connection and the journal.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.log.Warn("failed to close journal", "err", err)
		}
	}
}
