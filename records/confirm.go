package records

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Receipt reports a confirmed state change.
type Receipt struct {
	Hash   interfaces.RecordHash `json:"hash"`
	TxHash common.Hash           `json:"txHash"`
	Block  uint64                `json:"block"`
}

// ServiceOpts holds optional collaborators shared by both services.
type ServiceOpts struct {
	// Journal, when set, records every submitted transaction.
	Journal interfaces.TxJournal
	// ConfirmTimeout bounds the wait for inclusion. Zero waits indefinitely.
	ConfirmTimeout time.Duration
	// Now overrides the clock used for generated hashes and default dates.
	Now func() time.Time
}

type waiter interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// confirmer awaits submitted transactions and journals their outcome.
type confirmer struct {
	contract string
	chain    waiter
	journal  interfaces.TxJournal
	timeout  time.Duration
	now      func() time.Time
	log      *slog.Logger
}

func newConfirmer(contract string, chain waiter, log *slog.Logger, opts *ServiceOpts) confirmer {
	c := confirmer{
		contract: contract,
		chain:    chain,
		now:      time.Now,
		log:      log,
	}
	if opts != nil {
		c.journal = opts.Journal
		c.timeout = opts.ConfirmTimeout
		if opts.Now != nil {
			c.now = opts.Now
		}
	}
	return c
}

func (c *confirmer) confirm(ctx context.Context, operation string, hash interfaces.RecordHash, tx *types.Transaction) (*Receipt, error) {
	c.log.Info("transaction submitted",
		"contract", c.contract,
		"operation", operation,
		"hash", hash.String(),
		"tx", tx.Hash().Hex())

	var entryID string
	if c.journal != nil {
		id, err := c.journal.RecordSubmitted(ctx, c.contract, operation, hash, tx.Hash())
		if err != nil {
			c.log.Warn("failed to journal transaction", "tx", tx.Hash().Hex(), "err", err)
		} else {
			entryID = id
		}
	}

	waitCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	receipt, err := c.chain.WaitMined(waitCtx, tx)

	var block uint64
	if receipt != nil && receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}

	if entryID != "" {
		// Recorded even when the wait context expired.
		if jerr := c.journal.RecordOutcome(context.WithoutCancel(ctx), entryID, block, err); jerr != nil {
			c.log.Warn("failed to journal transaction outcome", "tx", tx.Hash().Hex(), "err", jerr)
		}
	}

	if err != nil {
		c.log.Error("transaction not confirmed", "operation", operation, "tx", tx.Hash().Hex(), "err", err)
		return nil, fmt.Errorf("%s %s: %w", operation, hash.String(), err)
	}

	c.log.Info("transaction confirmed", "operation", operation, "tx", tx.Hash().Hex(), "block", block)
	return &Receipt{Hash: hash, TxHash: tx.Hash(), Block: block}, nil
}
