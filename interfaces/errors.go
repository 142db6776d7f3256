package interfaces

import "errors"

// Configuration errors. These are fatal at startup.
var (
	// ErrMissingConfig is returned when a required configuration variable is absent.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrInvalidConfig is returned when a configuration value cannot be parsed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSigner is returned when neither a signing key nor a node-managed account is available.
	ErrNoSigner = errors.New("no signing identity available")

	// ErrABIMismatch is returned when a loaded contract artifact does not match the compiled-in ABI.
	ErrABIMismatch = errors.New("contract ABI mismatch")
)

// ErrValidation is returned for rejected user input. The operation is aborted
// but the session continues.
var ErrValidation = errors.New("invalid input")

// Remote and contract errors.
var (
	// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	// ErrDuplicateRegistration is returned when the contract rejects an already known hash.
	ErrDuplicateRegistration = errors.New("hash already registered")

	// ErrRecordNotFound is returned when the contract rejects a transition on a
	// record that is absent or already in its final state.
	ErrRecordNotFound = errors.New("record does not exist or is already finalized")

	// ErrReverted is returned for any other contract revert. The reason is kept opaque.
	ErrReverted = errors.New("execution reverted")

	// ErrTransactionFailed is returned when a mined transaction has a failed receipt.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrNoCode is returned when no contract code exists at the configured address.
	ErrNoCode = errors.New("no contract code at address")
)

// Artifact source errors.
var (
	// ErrArtifactNotFound is returned when a requested artifact cannot be found in the source.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrSourceUnavailable is returned when an artifact source is not accessible.
	ErrSourceUnavailable = errors.New("artifact source unavailable")

	// ErrInvalidLocationURI is returned when an artifact location URI is malformed or unsupported.
	ErrInvalidLocationURI = errors.New("invalid artifact location URI")
)
