package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&LoggingOpts{
		JSON:    true,
		Service: "healthcare-cli",
		Version: "v1.2.3",
		Output:  &buf,
	})

	logger.Info("connected", "chainId", 31337)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connected", entry["msg"])
	assert.Equal(t, "healthcare-cli", entry["service"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.EqualValues(t, 31337, entry["chainId"])
}

func TestSetupLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&LoggingOpts{Output: &buf})
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	logger = SetupLogger(&LoggingOpts{Debug: true, Output: &buf})
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
