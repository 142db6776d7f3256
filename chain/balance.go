package chain

import (
	"context"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"

	"github.com/ruteri/healthcare-contract-client/config"
)

// LowBalanceThreshold is 0.001 ETH.
var LowBalanceThreshold = big.NewInt(params.Ether / 1000)

// BalanceReport is the balance of one account on one network.
type BalanceReport struct {
	Network Network
	Balance *big.Int
	Err     error
}

// Low reports whether the balance is below LowBalanceThreshold.
func (r BalanceReport) Low() bool {
	return r.Err == nil && r.Balance.Cmp(LowBalanceThreshold) < 0
}

// ETH renders the balance in ether.
func (r BalanceReport) ETH() string {
	if r.Balance == nil {
		return ""
	}
	return FormatEther(r.Balance)
}

// CheckBalances reads the balance of account on every network. Failures are
// reported per network and never abort the remaining checks.
func CheckBalances(ctx context.Context, networks []Network, cfg *config.Config, account common.Address, log *slog.Logger) []BalanceReport {
	reports := make([]BalanceReport, 0, len(networks))
	for _, network := range networks {
		report := BalanceReport{Network: network}

		conn, err := Connect(ctx, network, cfg, log)
		if err != nil {
			report.Err = err
			reports = append(reports, report)
			continue
		}

		report.Balance, report.Err = conn.Balance(ctx, account)
		conn.Close()
		reports = append(reports, report)
	}
	return reports
}

// FormatEther renders wei as a decimal ether amount with at least one
// fractional digit.
func FormatEther(wei *big.Int) string {
	ether := big.NewInt(params.Ether)
	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	whole, frac := new(big.Int).QuoRem(abs, ether, new(big.Int))
	fracStr := frac.String()
	fracStr = strings.Repeat("0", 18-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}
	return sign + whole.String() + "." + fracStr
}
