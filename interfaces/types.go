// Package interfaces defines the core interfaces and types for the healthcare
// and prescription contract clients.
// It provides the contract between different components without implementation details.
package interfaces

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// RecordHash is the 32-byte primary key of a record in both contracts.
type RecordHash [32]byte

// ParseRecordHash converts user input into a record hash.
//
// A "0x"-prefixed 64-character hex string is taken literally. Any other
// non-empty text of at most 31 bytes is encoded as a zero-padded bytes32
// string, the same encoding the contracts' own tooling uses for readable keys.
func ParseRecordHash(s string) (RecordHash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecordHash{}, fmt.Errorf("%w: hash is required", ErrValidation)
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if len(s) == 66 {
			return NewRecordHashFromHex(s)
		}
	}

	return HashFromBytes32String(s)
}

// NewRecordHashFromHex decodes a 32-byte hex string, with or without 0x prefix.
func NewRecordHashFromHex(s string) (RecordHash, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(clean) != 64 {
		return RecordHash{}, fmt.Errorf("%w: hex hash must be 64 characters", ErrValidation)
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return RecordHash{}, fmt.Errorf("%w: invalid hex format: %v", ErrValidation, err)
	}

	var h RecordHash
	copy(h[:], raw)
	return h, nil
}

// HashFromBytes32String right-pads the UTF-8 bytes of text with zeros.
// The last byte is reserved as a terminator, so text may be at most 31 bytes.
func HashFromBytes32String(text string) (RecordHash, error) {
	if text == "" {
		return RecordHash{}, fmt.Errorf("%w: hash text is empty", ErrValidation)
	}
	if len(text) > 31 {
		return RecordHash{}, fmt.Errorf("%w: hash text %q is longer than 31 bytes", ErrValidation, text)
	}

	var h RecordHash
	copy(h[:], text)
	return h, nil
}

// HashFromText derives a record hash as keccak256 of the UTF-8 text.
func HashFromText(text string) RecordHash {
	return RecordHash(crypto.Keccak256Hash([]byte(text)))
}

// ParseTextHash converts user input into a prescription hash: a "0x"-prefixed
// 64-character hex string is taken literally, any other text is hashed with
// HashFromText.
func ParseTextHash(s string) (RecordHash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecordHash{}, fmt.Errorf("%w: hash is required", ErrValidation)
	}
	if (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) && len(s) == 66 {
		return NewRecordHashFromHex(s)
	}
	return HashFromText(s), nil
}

// HashFromTime derives the auto-generated key "<prefix>-<unix millis>".
func HashFromTime(prefix string, now time.Time) RecordHash {
	h, _ := HashFromBytes32String(fmt.Sprintf("%s-%d", prefix, now.UnixMilli()))
	return h
}

// String returns the 0x-prefixed hex representation.
func (h RecordHash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Bytes returns the raw 32 bytes.
func (h RecordHash) Bytes() []byte {
	return h[:]
}

// IsZero reports whether the hash is all zeros.
func (h RecordHash) IsZero() bool {
	return h == RecordHash{}
}

// Text recovers a bytes32 string. ok is false when the hash does not hold
// printable zero-padded text.
func (h RecordHash) Text() (text string, ok bool) {
	end := bytes.IndexByte(h[:], 0)
	if end <= 0 {
		return "", false
	}
	for _, b := range h[end:] {
		if b != 0 {
			return "", false
		}
	}

	raw := h[:end]
	if !utf8.Valid(raw) {
		return "", false
	}
	for _, r := range string(raw) {
		if !unicode.IsPrint(r) {
			return "", false
		}
	}
	return string(raw), true
}

// Display renders the hash together with its text form when it has one.
func (h RecordHash) Display() string {
	if text, ok := h.Text(); ok {
		return fmt.Sprintf("%s (%s)", h.String(), text)
	}
	return h.String()
}

// MarshalText implements encoding.TextMarshaler.
func (h RecordHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseRecordHash rules.
func (h *RecordHash) UnmarshalText(input []byte) error {
	parsed, err := ParseRecordHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ContractAddress represents an Ethereum contract address.
type ContractAddress [20]byte

// NewContractAddressFromHex parses a 0x-prefixed 40-character hex address.
func NewContractAddressFromHex(addr string) (ContractAddress, error) {
	if !strings.HasPrefix(addr, "0x") {
		return ContractAddress{}, errors.New("invalid address: must start with 0x")
	}

	clean := strings.TrimPrefix(addr, "0x")
	if len(clean) != 40 {
		return ContractAddress{}, errors.New("invalid address length: hex string must be 40 characters")
	}

	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return ContractAddress{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var res ContractAddress
	copy(res[:], addrBytes)
	return res, nil
}

// String returns the 0x-prefixed hex string representation of the contract address.
func (addr ContractAddress) String() string {
	return "0x" + hex.EncodeToString(addr[:])
}

// Bytes returns the raw 20-byte address.
func (addr ContractAddress) Bytes() []byte {
	return addr[:]
}

// HealthcareType classifies what a healthcare record refers to.
type HealthcareType uint8

const (
	HealthcareData HealthcareType = iota
	HealthcareReport
	DataToHospital
	ReportToHospital
)

// HealthcareTypes lists every valid type in code order.
var HealthcareTypes = []HealthcareType{HealthcareData, HealthcareReport, DataToHospital, ReportToHospital}

func (t HealthcareType) String() string {
	switch t {
	case HealthcareData:
		return "healthcareData"
	case HealthcareReport:
		return "healthcareReport"
	case DataToHospital:
		return "dataToHospital"
	case ReportToHospital:
		return "reportToHospital"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the four contract types.
func (t HealthcareType) Valid() bool {
	return t <= ReportToHospital
}

// HealthcareStatus is the lifecycle state of a healthcare record.
type HealthcareStatus uint8

const (
	HealthcareNull HealthcareStatus = iota
	HealthcareRegistered
	HealthcareDeleted
)

func (s HealthcareStatus) String() string {
	switch s {
	case HealthcareNull:
		return "Null"
	case HealthcareRegistered:
		return "Registered"
	case HealthcareDeleted:
		return "Deleted"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// HealthcareRecord is the decoded result of GetHealthcareInfo.
// Dates are unix seconds; DeletedDate is 0 unless the record was deleted.
type HealthcareRecord struct {
	RegisteredDate uint64           `json:"registeredDate"`
	DeletedDate    uint64           `json:"deletedDate"`
	PhoneNumber    string           `json:"phoneNumber"`
	Hospital       string           `json:"hospital"`
	Status         HealthcareStatus `json:"status"`
	Type           HealthcareType   `json:"healthcareType"`
}

// Exists reports whether the record was ever registered.
func (r HealthcareRecord) Exists() bool {
	return r.Status != HealthcareNull
}

// PrescriptionStatus is the lifecycle state of a prescription.
type PrescriptionStatus uint8

const (
	PrescriptionNull PrescriptionStatus = iota
	PrescriptionRegistered
	PrescriptionUsed
)

func (s PrescriptionStatus) String() string {
	switch s {
	case PrescriptionNull:
		return "Null"
	case PrescriptionRegistered:
		return "Registered"
	case PrescriptionUsed:
		return "Used"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// PrescriptionRecord is the decoded result of GetPrescriptionInfo.
// PrepareDate and Pharmacy are only set once the prescription was used.
type PrescriptionRecord struct {
	PrescribeDate uint64             `json:"prescribeDate"`
	EndDate       uint64             `json:"endDate"`
	PrepareDate   uint64             `json:"prepareDate"`
	Hospital      string             `json:"hospital"`
	Pharmacy      string             `json:"pharmacy"`
	Status        PrescriptionStatus `json:"status"`
}

// Exists reports whether the prescription was ever registered.
func (r PrescriptionRecord) Exists() bool {
	return r.Status != PrescriptionNull
}

// RecordEvent is a lifecycle event emitted by either contract.
type RecordEvent struct {
	Name        string      `json:"name"`
	Hash        RecordHash  `json:"hash"`
	BlockNumber uint64      `json:"blockNumber"`
	TxHash      common.Hash `json:"txHash"`
	LogIndex    uint        `json:"logIndex"`
}

// FormatUnix renders a unix timestamp for display, or fallback when it is zero.
func FormatUnix(ts uint64, fallback string) string {
	if ts == 0 {
		return fallback
	}
	return time.Unix(int64(ts), 0).Format(time.DateTime)
}
