package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/healthcare-contract-client/chain"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/envfile"
	"github.com/ruteri/healthcare-contract-client/shell"
)

const (
	sectionHealthcare   = "Healthcare Contract Configuration"
	sectionPrescription = "Prescription Contract Configuration"
	sectionRPC          = "Network RPC URLs"
)

// placeholders are the keys update-env makes sure exist.
var placeholders = []envfile.Entry{
	{Key: config.KeyHealthcareContract, Section: sectionHealthcare},
	{Key: config.KeyPrescriptionContract, Section: sectionPrescription},
	{Key: config.KeySepoliaRPCURL, Section: sectionRPC},
	{Key: config.KeyMainnetRPCURL, Section: sectionRPC},
	{Key: config.KeyRPCURL, Value: config.DefaultRPCURL, Section: sectionRPC},
}

// contractKeys maps --contract values to their variable and section.
var contractKeys = map[string]envfile.Entry{
	"healthcare":   {Key: config.KeyHealthcareContract, Section: sectionHealthcare},
	"prescription": {Key: config.KeyPrescriptionContract, Section: sectionPrescription},
}

func updateEnv(sh *shell.Shell, path string) error {
	added, err := envfile.EnsureKeys(path, placeholders...)
	if err != nil {
		return fmt.Errorf("error updating %s: %w", path, err)
	}
	if len(added) == 0 {
		sh.Println("All configurations already exist in", path)
		return nil
	}
	for _, key := range added {
		sh.Printf("Added %s to %s\n", key, path)
	}
	sh.Printf("\nUpdated %s, fill in the empty values before use.\n", path)
	return nil
}

func setContractAddress(sh *shell.Shell, path, contract, address string) error {
	entry, ok := contractKeys[contract]
	if !ok {
		return fmt.Errorf("unknown contract %q, expected healthcare or prescription", contract)
	}

	if address == "" {
		var err error
		address, err = sh.Prompt(fmt.Sprintf("Enter your deployed %s contract address: ", contract))
		if err != nil {
			return err
		}
	}
	if !config.ValidAddress(address) {
		return fmt.Errorf("invalid contract address format %q: must be 0x followed by 40 hex characters", address)
	}

	if err := envfile.Set(path, entry.Key, address, entry.Section); err != nil {
		return fmt.Errorf("error updating contract address: %w", err)
	}
	sh.Println("Contract address updated successfully!")
	sh.Printf("Contract Address: %s\n", address)
	return nil
}

// rpcURLs shows the configured endpoints and optionally rewrites them.
// Non-empty values in preset are written without prompting.
func rpcURLs(sh *shell.Shell, path string, preset map[string]string) error {
	f, err := envfile.Open(path)
	if err != nil {
		return err
	}

	sh.Println("Current RPC configuration:")
	sh.Println("==========================")
	lines := f.Lines("RPC_URL")
	if len(lines) == 0 {
		sh.Println("   No RPC URLs configured yet")
	}
	for _, line := range lines {
		sh.Printf("   %s\n", line)
	}

	updates := map[string]string{}
	for key, value := range preset {
		if value != "" {
			updates[key] = value
		}
	}

	if len(updates) == 0 {
		sh.Println("\nSetup Options:")
		sh.Println("1. Reset local RPC URL to " + config.DefaultRPCURL)
		sh.Println("2. Enter custom RPC endpoints")
		sh.Println("3. Skip setup (keep current configuration)")

		choice, err := sh.Prompt("\nEnter your choice (1-3): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			updates[config.KeyRPCURL] = config.DefaultRPCURL
		case "2":
			if updates[config.KeySepoliaRPCURL], err = sh.Prompt("Enter Sepolia RPC URL (or press Enter to skip): "); err != nil {
				return err
			}
			if updates[config.KeyMainnetRPCURL], err = sh.Prompt("Enter Mainnet RPC URL (or press Enter to skip): "); err != nil {
				return err
			}
			local, err := sh.Prompt(fmt.Sprintf("Enter Local RPC URL (default: %s): ", config.DefaultRPCURL))
			if err != nil {
				return err
			}
			if local == "" {
				local = config.DefaultRPCURL
			}
			updates[config.KeyRPCURL] = local
		case "3":
			sh.Println("Skipping setup, keeping current configuration")
			return nil
		default:
			return fmt.Errorf("invalid choice %q", choice)
		}
	}

	for _, key := range []string{config.KeySepoliaRPCURL, config.KeyMainnetRPCURL, config.KeyRPCURL} {
		if value := updates[key]; value != "" {
			f.Set(key, value, sectionRPC)
			sh.Printf("Updated %s\n", key)
		}
	}
	if err := f.Save(); err != nil {
		return err
	}
	sh.Printf("\n%s updated successfully!\n", path)
	return nil
}

// balanceAccount picks --account, then ACCOUNT_ADDRESS, then the address of
// PRIVATE_KEY.
func balanceAccount(ctx context.Context, cfg *config.Config, flagValue string) (common.Address, error) {
	if flagValue != "" {
		if !config.ValidAddress(flagValue) {
			return common.Address{}, fmt.Errorf("invalid account %q", flagValue)
		}
		return common.HexToAddress(flagValue), nil
	}

	account, err := cfg.Account()
	if err != nil || account != (common.Address{}) {
		return account, err
	}

	if err := cfg.Require(config.KeyPrivateKey); err != nil {
		return common.Address{}, err
	}
	key, err := chain.LoadPrivateKey(ctx, cfg)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func checkBalance(ctx context.Context, sh *shell.Shell, cfg *config.Config, account common.Address, networks []chain.Network, log *slog.Logger) {
	sh.Printf("Account: %s\n\n", account.Hex())

	for _, report := range chain.CheckBalances(ctx, networks, cfg, account, log) {
		sh.Printf("%s:\n", report.Network.Name)
		if report.Err != nil {
			sh.Printf("   Error: %v\n\n", report.Err)
			continue
		}
		sh.Printf("   Balance: %s ETH\n", report.ETH())
		sh.Printf("   Chain ID: %d\n", report.Network.ChainID)
		if report.Low() {
			sh.Println("   Low balance! Consider getting more ETH")
			if report.Network.Key == chain.Sepolia.Key {
				sh.Println("   Get free test ETH from: https://sepoliafaucet.com")
			}
		}
		sh.Println()
	}
}
