package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/healthcare-contract-client/chain"
	"github.com/ruteri/healthcare-contract-client/cmd/flags"
	"github.com/ruteri/healthcare-contract-client/config"
	"github.com/ruteri/healthcare-contract-client/shell"
)

var (
	flagContract = &cli.StringFlag{
		Name:  "contract",
		Value: "healthcare",
		Usage: "contract whose address is set: healthcare or prescription",
	}
	flagSepolia = &cli.StringFlag{
		Name:  "sepolia",
		Usage: "Sepolia RPC URL to write without prompting",
	}
	flagMainnet = &cli.StringFlag{
		Name:  "mainnet",
		Usage: "Mainnet RPC URL to write without prompting",
	}
	flagLocal = &cli.StringFlag{
		Name:  "local",
		Usage: "local RPC URL to write without prompting",
	}
	flagAccount = &cli.StringFlag{
		Name:  "account",
		Usage: "account to check, defaults to ACCOUNT_ADDRESS or the address of PRIVATE_KEY",
	}
)

func main() {
	sh := shell.New(os.Stdin, os.Stdout)

	app := &cli.App{
		Name:  "envsetup",
		Usage: "Maintain the .env file used by the healthcare and prescription clients",
		Flags: append([]cli.Flag{flags.EnvFileFlag, flags.LogServiceFlagFn("envsetup")}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:  "update-env",
				Usage: "Add placeholders for missing configuration keys",
				Action: func(cCtx *cli.Context) error {
					return updateEnv(sh, cCtx.String(flags.EnvFileFlag.Name))
				},
			},
			{
				Name:      "set-contract-address",
				Usage:     "Store a deployed contract address",
				ArgsUsage: "[address]",
				Flags:     []cli.Flag{flagContract},
				Action: func(cCtx *cli.Context) error {
					return setContractAddress(sh, cCtx.String(flags.EnvFileFlag.Name), cCtx.String(flagContract.Name), cCtx.Args().First())
				},
			},
			{
				Name:  "rpc-urls",
				Usage: "Show and update the RPC endpoints",
				Flags: []cli.Flag{flagSepolia, flagMainnet, flagLocal},
				Action: func(cCtx *cli.Context) error {
					return rpcURLs(sh, cCtx.String(flags.EnvFileFlag.Name), map[string]string{
						config.KeySepoliaRPCURL: cCtx.String(flagSepolia.Name),
						config.KeyMainnetRPCURL: cCtx.String(flagMainnet.Name),
						config.KeyRPCURL:        cCtx.String(flagLocal.Name),
					})
				},
			},
			{
				Name:  "check-balance",
				Usage: "Show the account balance on the local, Sepolia and mainnet networks",
				Flags: []cli.Flag{flagAccount},
				Action: func(cCtx *cli.Context) error {
					logger := flags.SetupLogger(cCtx)
					cfg, err := config.Load(config.LoadOptions{EnvFile: cCtx.String(flags.EnvFileFlag.Name)})
					if err != nil {
						return err
					}
					account, err := balanceAccount(cCtx.Context, cfg, cCtx.String(flagAccount.Name))
					if err != nil {
						return err
					}
					checkBalance(cCtx.Context, sh, cfg, account, []chain.Network{chain.Local, chain.Sepolia, chain.Mainnet}, logger)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
