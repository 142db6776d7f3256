package interfaces

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordHash(t *testing.T) {
	hexHash := "0x" + strings.Repeat("ab", 32)

	tests := []struct {
		name     string
		input    string
		wantText string
		wantHex  string
		wantErr  bool
	}{
		{name: "short text", input: "h1", wantText: "h1"},
		{name: "trimmed text", input: "  health-1  ", wantText: "health-1"},
		{name: "31 bytes", input: strings.Repeat("x", 31), wantText: strings.Repeat("x", 31)},
		{name: "32 bytes rejected", input: strings.Repeat("x", 32), wantErr: true},
		{name: "empty rejected", input: "   ", wantErr: true},
		{name: "hex literal", input: hexHash, wantHex: hexHash},
		{name: "short 0x text", input: "0xabc", wantText: "0xabc"},
		{name: "bad hex of full length", input: "0x" + strings.Repeat("zz", 32), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseRecordHash(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)

			if tt.wantHex != "" {
				assert.Equal(t, tt.wantHex, h.String())
				return
			}
			text, ok := h.Text()
			assert.True(t, ok)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestHashFromBytes32String_Layout(t *testing.T) {
	h, err := HashFromBytes32String("health1")
	require.NoError(t, err)
	assert.Equal(t, "0x6865616c74683100000000000000000000000000000000000000000000000000", h.String())
	assert.Equal(t, "0x6865616c74683100000000000000000000000000000000000000000000000000 (health1)", h.Display())
}

func TestHashFromTime(t *testing.T) {
	h := HashFromTime("health", time.UnixMilli(1700000000123))
	text, ok := h.Text()
	require.True(t, ok)
	assert.Equal(t, "health-1700000000123", text)
}

func TestHashFromText_IsKeccak(t *testing.T) {
	// keccak256("") is a well known constant.
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", HashFromText("").String())

	h := HashFromText("example_healthcare_data")
	_, ok := h.Text()
	assert.False(t, ok)
	assert.Equal(t, h.String(), h.Display())
}

func TestParseTextHash(t *testing.T) {
	h, err := ParseTextHash(" rx-1 ")
	require.NoError(t, err)
	assert.Equal(t, HashFromText("rx-1"), h)

	literal := HashFromText("rx-1").String()
	h, err = ParseTextHash(literal)
	require.NoError(t, err)
	assert.Equal(t, literal, h.String())

	_, err = ParseTextHash("  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseTextHash("0x" + strings.Repeat("zz", 32))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordHash_TextRoundTrip(t *testing.T) {
	var h RecordHash
	require.NoError(t, h.UnmarshalText([]byte("rx-42")))
	out, err := h.MarshalText()
	require.NoError(t, err)

	var back RecordHash
	require.NoError(t, back.UnmarshalText(out))
	assert.Equal(t, h, back)
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "healthcareData", HealthcareData.String())
	assert.Equal(t, "reportToHospital", ReportToHospital.String())
	assert.True(t, ReportToHospital.Valid())
	assert.False(t, HealthcareType(4).Valid())
	assert.Len(t, HealthcareTypes, 4)

	assert.Equal(t, "Deleted", HealthcareDeleted.String())
	assert.Equal(t, "Used", PrescriptionUsed.String())
	assert.Equal(t, "unknown(9)", HealthcareStatus(9).String())
}

func TestNewContractAddressFromHex(t *testing.T) {
	addr, err := NewContractAddressFromHex("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.NoError(t, err)
	assert.Equal(t, "0x5fbdb2315678afecb367f032d93f642f64180aa3", addr.String())

	_, err = NewContractAddressFromHex("5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Error(t, err)
	_, err = NewContractAddressFromHex("0x1234")
	assert.Error(t, err)
}

func TestArtifactLocation(t *testing.T) {
	loc, err := NewArtifactLocation("s3://bucket/artifacts/?region=us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "s3", loc.Scheme())
	assert.Equal(t, "us-east-1", loc.GetParam("region"))

	_, err = NewArtifactLocation("ftp://host/path")
	assert.ErrorIs(t, err, ErrInvalidLocationURI)
}

func TestFormatUnix(t *testing.T) {
	assert.Equal(t, "N/A", FormatUnix(0, "N/A"))
	assert.NotEqual(t, "N/A", FormatUnix(1700000000, "N/A"))
}
