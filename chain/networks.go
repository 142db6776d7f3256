// Package chain opens JSON-RPC connections to Ethereum nodes and resolves
// the identity used to sign transactions.
package chain

import (
	"fmt"
	"strings"

	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Network is a named endpoint preset.
type Network struct {
	// Choice is the menu number shown by the interactive shell.
	Choice string
	Key    string
	Name   string
	// URL is fixed for presets that do not read the environment.
	URL string
	// URLKey names the configuration variable holding the endpoint.
	URLKey string
	// ChainID is the expected chain id, zero when any chain is accepted.
	ChainID uint64
	// NodeAccounts allows signing with the node's own accounts.
	NodeAccounts bool
}

var (
	Local = Network{
		Choice:       "1",
		Key:          "local",
		Name:         "Hardhat Local",
		URL:          config.DefaultRPCURL,
		ChainID:      31337,
		NodeAccounts: true,
	}
	Sepolia = Network{
		Choice:  "2",
		Key:     "sepolia",
		Name:    "Sepolia Testnet",
		URLKey:  config.KeySepoliaRPCURL,
		ChainID: 11155111,
	}
	Mainnet = Network{
		Choice:  "3",
		Key:     "mainnet",
		Name:    "Ethereum Mainnet",
		URLKey:  config.KeyMainnetRPCURL,
		ChainID: 1,
	}
	Custom = Network{
		Choice:       "4",
		Key:          "custom",
		Name:         "Custom Network",
		URLKey:       config.KeyRPCURL,
		NodeAccounts: true,
	}
)

// Networks lists the presets in menu order.
var Networks = []Network{Local, Sepolia, Mainnet, Custom}

// LookupNetwork finds a preset by menu number or key.
func LookupNetwork(choice string) (Network, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	for _, n := range Networks {
		if choice == n.Choice || choice == n.Key {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("%w: invalid network choice %q", interfaces.ErrValidation, choice)
}

// Endpoint returns the RPC URL of n under cfg.
func (n Network) Endpoint(cfg *config.Config) (string, error) {
	if n.URL != "" {
		return n.URL, nil
	}
	url := cfg.Get(n.URLKey)
	if url == "" {
		return "", fmt.Errorf("%w: %s network URL not configured (%s)", interfaces.ErrMissingConfig, n.Name, n.URLKey)
	}
	return url, nil
}

func (n Network) String() string {
	return n.Name
}
