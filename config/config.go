// Package config resolves the endpoint, credential and contract addresses used
// by the command-line and HTTP front-ends.
//
// Values are read once per process, lowest to highest precedence: built-in
// defaults, the .env file, the process environment and explicit overrides
// (normally CLI flags).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Recognized environment variables.
const (
	KeyRPCURL               = "RPC_URL"
	KeySepoliaRPCURL        = "SEPOLIA_RPC_URL"
	KeyMainnetRPCURL        = "MAINNET_RPC_URL"
	KeyPrivateKey           = "PRIVATE_KEY"
	KeyHealthcareContract   = "HEALTHCARE_CONTRACT_ADDRESS"
	KeyPrescriptionContract = "PRESCRIPTION_CONTRACT_ADDRESS"
	KeyChainID              = "CHAIN_ID"
	KeyAccountAddress       = "ACCOUNT_ADDRESS"
	KeyABIArtifactURI       = "ABI_ARTIFACT_URI"
	KeyJournalPath          = "JOURNAL_PATH"
	KeyVaultAddr            = "VAULT_ADDR"
	KeyVaultToken           = "VAULT_TOKEN"
	KeyConfirmTimeout       = "CONFIRM_TIMEOUT"
)

// Keys lists every recognized variable.
var Keys = []string{
	KeyRPCURL,
	KeySepoliaRPCURL,
	KeyMainnetRPCURL,
	KeyPrivateKey,
	KeyHealthcareContract,
	KeyPrescriptionContract,
	KeyChainID,
	KeyAccountAddress,
	KeyABIArtifactURI,
	KeyJournalPath,
	KeyVaultAddr,
	KeyVaultToken,
	KeyConfirmTimeout,
}

// DefaultEnvFile is the .env file read when LoadOptions.EnvFile is empty.
const DefaultEnvFile = ".env"

// DefaultRPCURL is the local development node endpoint.
const DefaultRPCURL = "http://localhost:8545"

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidAddress reports whether s is a 0x-prefixed 40 hex character address.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// EnvFile is the .env path. A missing file is not an error.
	EnvFile string
	// Overrides take precedence over every other source. Empty values are ignored.
	Overrides map[string]string
}

// Config is the resolved, read-only process configuration.
type Config struct {
	RPCURL               string
	SepoliaRPCURL        string
	MainnetRPCURL        string
	PrivateKey           string
	HealthcareContract   string
	PrescriptionContract string
	ChainID              uint64
	AccountAddress       string
	ABIArtifactURI       string
	JournalPath          string
	VaultAddr            string
	VaultToken           string
	ConfirmTimeout       time.Duration

	// EnvFile is the .env path the configuration was read from.
	EnvFile string

	values map[string]string
}

// Load resolves the configuration. It fails with interfaces.ErrInvalidConfig
// when a numeric or duration value cannot be parsed; required keys are
// checked separately through Require.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	fileValues, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: could not read %s: %v", interfaces.ErrInvalidConfig, envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyRPCURL, DefaultRPCURL)
	for _, key := range Keys {
		if value, ok := fileValues[key]; ok && value != "" {
			v.SetDefault(key, value)
		}
	}
	for key, value := range opts.Overrides {
		if value != "" {
			v.Set(key, value)
		}
	}

	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		values[key] = strings.TrimSpace(v.GetString(key))
	}

	cfg := &Config{
		RPCURL:               values[KeyRPCURL],
		SepoliaRPCURL:        values[KeySepoliaRPCURL],
		MainnetRPCURL:        values[KeyMainnetRPCURL],
		PrivateKey:           values[KeyPrivateKey],
		HealthcareContract:   values[KeyHealthcareContract],
		PrescriptionContract: values[KeyPrescriptionContract],
		AccountAddress:       values[KeyAccountAddress],
		ABIArtifactURI:       values[KeyABIArtifactURI],
		JournalPath:          values[KeyJournalPath],
		VaultAddr:            values[KeyVaultAddr],
		VaultToken:           values[KeyVaultToken],
		EnvFile:              envFile,
		values:               values,
	}

	if raw := values[KeyChainID]; raw != "" {
		cfg.ChainID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a chain id", interfaces.ErrInvalidConfig, KeyChainID, raw)
		}
	}

	if raw := values[KeyConfirmTimeout]; raw != "" {
		cfg.ConfirmTimeout, err = time.ParseDuration(raw)
		if err != nil || cfg.ConfirmTimeout < 0 {
			return nil, fmt.Errorf("%w: %s=%q is not a duration", interfaces.ErrInvalidConfig, KeyConfirmTimeout, raw)
		}
	}

	return cfg, nil
}

// Get returns the resolved value of key, empty when unset.
func (c *Config) Get(key string) string {
	return c.values[key]
}

// Require fails with interfaces.ErrMissingConfig naming the first absent key.
func (c *Config) Require(keys ...string) error {
	for _, key := range keys {
		if c.Get(key) == "" {
			return fmt.Errorf("%w: %s not found in environment or %s", interfaces.ErrMissingConfig, key, c.EnvFile)
		}
	}
	return nil
}

// HealthcareAddress returns the required healthcare contract address.
func (c *Config) HealthcareAddress() (common.Address, error) {
	return c.address(KeyHealthcareContract)
}

// PrescriptionAddress returns the required prescription contract address.
func (c *Config) PrescriptionAddress() (common.Address, error) {
	return c.address(KeyPrescriptionContract)
}

// Account returns ACCOUNT_ADDRESS, the zero address when unset.
func (c *Config) Account() (common.Address, error) {
	if c.AccountAddress == "" {
		return common.Address{}, nil
	}
	return c.address(KeyAccountAddress)
}

func (c *Config) address(key string) (common.Address, error) {
	if err := c.Require(key); err != nil {
		return common.Address{}, err
	}
	value := c.Get(key)
	if !ValidAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %s=%q must be 0x followed by 40 hex characters", interfaces.ErrInvalidConfig, key, value)
	}
	return common.HexToAddress(value), nil
}
