package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/bindings/healthcare"
	"github.com/ruteri/healthcare-contract-client/common"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

func hardhatArtifact(t *testing.T, contract, abiJSON string) []byte {
	t.Helper()
	out, err := json.Marshal(map[string]interface{}{
		"_format":      "hh-sol-artifact-1",
		"contractName": contract,
		"sourceName":   "Contracts/" + contract + ".sol",
		"abi":          json.RawMessage(abiJSON),
		"bytecode":     "0x",
	})
	require.NoError(t, err)
	return out
}

// withoutEntry returns abiJSON minus the entry called name.
func withoutEntry(t *testing.T, abiJSON, name string) string {
	t.Helper()
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(abiJSON), &entries))

	kept := entries[:0]
	for _, e := range entries {
		if e["name"] != name {
			kept = append(kept, e)
		}
	}
	out, err := json.Marshal(kept)
	require.NoError(t, err)
	return string(out)
}

func writeArtifact(t *testing.T, dir, contract string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, ArtifactPath(contract))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestVerify_FileSource(t *testing.T) {
	ctx := context.Background()
	expected, err := healthcare.HealthcareMetaData.GetAbi()
	require.NoError(t, err)

	dir := t.TempDir()
	writeArtifact(t, dir, "Healthcare", hardhatArtifact(t, "Healthcare", healthcare.HealthcareMetaData.ABI))

	source := NewFileSource(dir, common.DiscardLogger())
	assert.True(t, source.Available(ctx))
	require.NoError(t, Verify(ctx, source, "Healthcare", expected, common.DiscardLogger()))

	err = Verify(ctx, source, "Prescription", expected, common.DiscardLogger())
	assert.ErrorIs(t, err, interfaces.ErrABIMismatch)
}

func TestVerifyABI_Mismatch(t *testing.T) {
	expected, err := healthcare.HealthcareMetaData.GetAbi()
	require.NoError(t, err)

	missing, err := ParseABI([]byte(withoutEntry(t, healthcare.HealthcareMetaData.ABI, "DeleteHealthcare")))
	require.NoError(t, err)
	err = VerifyABI(expected, missing)
	assert.ErrorIs(t, err, interfaces.ErrABIMismatch)
	assert.Contains(t, err.Error(), "DeleteHealthcare(bytes32)")

	changed := strings.Replace(healthcare.HealthcareMetaData.ABI,
		`"name":"phoneNumber","type":"string"`, `"name":"phoneNumber","type":"bytes32"`, 1)
	require.NotEqual(t, healthcare.HealthcareMetaData.ABI, changed)
	actual, err := ParseABI([]byte(changed))
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyABI(expected, actual), interfaces.ErrABIMismatch)

	extra := strings.Replace(healthcare.HealthcareMetaData.ABI, "[", `[{"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},`, 1)
	actual, err = ParseABI([]byte(extra))
	require.NoError(t, err)
	assert.NoError(t, VerifyABI(expected, actual))
}

func TestParseABI_Invalid(t *testing.T) {
	for _, data := range []string{`{"contractName":"Healthcare"}`, `{not json`, `[{"type":"function","name":1}]`} {
		_, err := ParseABI([]byte(data))
		assert.ErrorIs(t, err, interfaces.ErrABIMismatch, data)
	}
}

func TestFileSource_StaysInBaseDir(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "artifacts")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.json"), []byte("{}"), 0o644))

	source := NewFileSource(base, common.DiscardLogger())
	_, err := source.Fetch(context.Background(), "../secret.json")
	assert.ErrorIs(t, err, interfaces.ErrArtifactNotFound)
}

type stubSource struct {
	name      string
	available bool
	data      map[string][]byte
}

func (s *stubSource) Fetch(_ context.Context, path string) ([]byte, error) {
	if d, ok := s.data[path]; ok {
		return d, nil
	}
	return nil, interfaces.ErrArtifactNotFound
}
func (s *stubSource) Available(context.Context) bool { return s.available }
func (s *stubSource) Name() string                   { return s.name }
func (s *stubSource) LocationURI() string            { return "stub://" + s.name }

func TestMultiSource_Fallback(t *testing.T) {
	ctx := context.Background()
	down := &stubSource{name: "down", data: map[string][]byte{"a": []byte("down")}}
	empty := &stubSource{name: "empty", available: true}
	full := &stubSource{name: "full", available: true, data: map[string][]byte{"a": []byte("full")}}

	multi := NewMultiSource([]interfaces.ArtifactSource{down, empty, full}, common.DiscardLogger())
	assert.True(t, multi.Available(ctx))
	assert.Equal(t, "multi:[stub://down,stub://empty,stub://full]", multi.LocationURI())

	data, err := multi.Fetch(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "full", string(data))

	_, err = multi.Fetch(ctx, "b")
	assert.ErrorIs(t, err, interfaces.ErrArtifactNotFound)
	assert.ErrorIs(t, err, interfaces.ErrSourceUnavailable)
}

func TestSourceFactory(t *testing.T) {
	f := NewSourceFactory(common.DiscardLogger())

	source, err := f.SourceForURIs("file:///tmp/artifacts")
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, source)
	assert.Equal(t, "file:///tmp/artifacts", source.LocationURI())

	source, err = f.SourceForURIs("file://./artifacts, s3://key:secret@bucket/build?region=eu-west-1, ipfs://127.0.0.1:5001/QmRoot?timeout=5s")
	require.NoError(t, err)
	multi, ok := source.(*MultiSource)
	require.True(t, ok)
	require.Len(t, multi.sources, 3)
	assert.Equal(t, "file://./artifacts", multi.sources[0].LocationURI())
	assert.Equal(t, "s3://key:***@bucket/build?region=eu-west-1", multi.sources[1].LocationURI())
	assert.NotContains(t, multi.LocationURI(), "secret")
	assert.Equal(t, "ipfs://127.0.0.1:5001/QmRoot?timeout=5s", multi.sources[2].LocationURI())

	for _, bad := range []string{"", "github://owner/repo", "ipfs://127.0.0.1:5001/", "ipfs://host/Qm?timeout=soon", "s3:///prefix"} {
		_, err := f.SourceForURIs(bad)
		assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI, bad)
	}
}

func TestS3Source_Fetch(t *testing.T) {
	artifact := hardhatArtifact(t, "Healthcare", healthcare.HealthcareMetaData.ABI)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/builds/hardhat/Contracts/Healthcare.sol/Healthcare.json":
			_, _ = w.Write(artifact)
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		}
	}))
	defer srv.Close()

	source, err := NewS3Source(S3Options{
		Bucket:   "builds",
		Prefix:   "hardhat/",
		Region:   "us-east-1",
		Endpoint: srv.URL,
	}, common.DiscardLogger())
	require.NoError(t, err)

	expected, err := healthcare.HealthcareMetaData.GetAbi()
	require.NoError(t, err)
	data, err := source.Fetch(context.Background(), ArtifactPath("Healthcare"))
	require.NoError(t, err)
	actual, err := ParseABI(data)
	require.NoError(t, err)
	assert.NoError(t, VerifyABI(expected, actual))

	_, err = source.Fetch(context.Background(), ArtifactPath("Prescription"))
	assert.ErrorIs(t, err, interfaces.ErrArtifactNotFound)
}

func TestIPFSSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/cat" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.URL.Query().Get("arg") {
		case "/ipfs/QmRoot/Contracts/Healthcare.sol/Healthcare.json":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(`{"abi":[]}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"Message":"no link named \"Prescription.sol\" under QmRoot","Code":0,"Type":"error"}`))
		}
	}))
	defer srv.Close()

	host, port, ok := strings.Cut(strings.TrimPrefix(srv.URL, "http://"), ":")
	require.True(t, ok)
	source := NewIPFSSource(host, port, "QmRoot", 5*time.Second, common.DiscardLogger())

	data, err := source.Fetch(context.Background(), ArtifactPath("Healthcare"))
	require.NoError(t, err)
	assert.Equal(t, `{"abi":[]}`, string(data))

	_, err = source.Fetch(context.Background(), ArtifactPath("Prescription"))
	assert.True(t, errors.Is(err, interfaces.ErrArtifactNotFound), "got %v", err)
}
