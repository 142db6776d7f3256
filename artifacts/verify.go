// Package artifacts fetches contract build artifacts and checks that the
// ABI they declare matches the bindings compiled into the client.
package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// ArtifactPath is the Hardhat artifact path of a contract, relative to the
// artifacts/ directory.
func ArtifactPath(contract string) string {
	return fmt.Sprintf("Contracts/%s.sol/%s.json", contract, contract)
}

// ParseABI reads either a Hardhat artifact ({"abi": [...]}) or a bare ABI array.
func ParseABI(data []byte) (*abi.ABI, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(trimmed, &artifact); err != nil {
			return nil, fmt.Errorf("%w: invalid artifact: %v", interfaces.ErrABIMismatch, err)
		}
		if len(artifact.ABI) == 0 {
			return nil, fmt.Errorf("%w: artifact has no abi field", interfaces.ErrABIMismatch)
		}
		trimmed = artifact.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid abi: %v", interfaces.ErrABIMismatch, err)
	}
	return &parsed, nil
}

// VerifyABI checks that every method and event of expected exists in actual
// with the same signature and outputs. Extra entries in actual are allowed.
func VerifyABI(expected, actual *abi.ABI) error {
	var problems []string

	for name, want := range expected.Methods {
		got, ok := actual.Methods[name]
		switch {
		case !ok:
			problems = append(problems, "missing function "+want.Sig)
		case got.Sig != want.Sig:
			problems = append(problems, fmt.Sprintf("function %s has signature %s", want.Sig, got.Sig))
		case argTypes(got.Outputs) != argTypes(want.Outputs):
			problems = append(problems, fmt.Sprintf("function %s returns (%s), want (%s)", want.Sig, argTypes(got.Outputs), argTypes(want.Outputs)))
		}
	}

	for name, want := range expected.Events {
		got, ok := actual.Events[name]
		switch {
		case !ok:
			problems = append(problems, "missing event "+want.Sig)
		case got.Sig != want.Sig:
			problems = append(problems, fmt.Sprintf("event %s has signature %s", want.Sig, got.Sig))
		case indexedMask(got.Inputs) != indexedMask(want.Inputs):
			problems = append(problems, fmt.Sprintf("event %s has different indexed inputs", want.Sig))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", interfaces.ErrABIMismatch, strings.Join(problems, "; "))
	}
	return nil
}

// Verify fetches the artifact of contract from source and verifies it
// against expected.
func Verify(ctx context.Context, source interfaces.ArtifactSource, contract string, expected *abi.ABI, log *slog.Logger) error {
	path := ArtifactPath(contract)
	data, err := source.Fetch(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: could not fetch %s from %s: %v", interfaces.ErrABIMismatch, path, source.LocationURI(), err)
	}

	actual, err := ParseABI(data)
	if err != nil {
		return err
	}
	if err := VerifyABI(expected, actual); err != nil {
		return fmt.Errorf("%s: %w", contract, err)
	}

	log.Info("contract artifact matches bindings", "contract", contract, "source", source.Name())
	return nil
}

func argTypes(args abi.Arguments) string {
	types := make([]string, len(args))
	for i, arg := range args {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}

func indexedMask(args abi.Arguments) string {
	var b strings.Builder
	for _, arg := range args {
		if arg.Indexed {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
