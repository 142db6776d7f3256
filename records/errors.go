package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Revert reason fragments, matched as opaque codes from the contracts.
const (
	reasonDuplicate     = "Cannot register same hash"
	reasonMissingOrDone = "does not exist or already"
)

// ClassifyRevert maps a contract revert to one of the interfaces sentinel
// errors. Errors that are not reverts (transport, signing, context) are
// returned unchanged.
func ClassifyRevert(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, interfaces.ErrDuplicateRegistration) ||
		errors.Is(err, interfaces.ErrRecordNotFound) ||
		errors.Is(err, interfaces.ErrReverted) {
		return err
	}

	reason, ok := RevertReason(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(reason, reasonDuplicate):
		return fmt.Errorf("%w: %s", interfaces.ErrDuplicateRegistration, reason)
	case strings.Contains(reason, reasonMissingOrDone):
		return fmt.Errorf("%w: %s", interfaces.ErrRecordNotFound, reason)
	case reason == "":
		return interfaces.ErrReverted
	default:
		return fmt.Errorf("%w: %s", interfaces.ErrReverted, reason)
	}
}

// RevertReason extracts the revert reason from err. The ABI-encoded
// Error(string) payload of a JSON-RPC error takes precedence over the
// message text.
func RevertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(data); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason, true
				}
			}
		}
	}

	msg := err.Error()

	// Hardhat: "... reverted with reason string 'Cannot register same hash.'"
	const hardhatMarker = "reverted with reason string '"
	if idx := strings.Index(msg, hardhatMarker); idx >= 0 {
		rest := msg[idx+len(hardhatMarker):]
		if end := strings.Index(rest, "'"); end >= 0 {
			return rest[:end], true
		}
		return rest, true
	}

	// geth and most providers: "execution reverted: <reason>"
	const gethMarker = "execution reverted"
	if idx := strings.Index(msg, gethMarker); idx >= 0 {
		rest := strings.TrimSpace(msg[idx+len(gethMarker):])
		return strings.TrimSpace(strings.TrimPrefix(rest, ":")), true
	}

	return "", false
}
