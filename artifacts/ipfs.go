package artifacts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// IPFSSource reads artifacts from a directory pinned on IPFS, through the
// HTTP API of an IPFS node.
type IPFSSource struct {
	shell       *shell.Shell
	apiURL      string
	root        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSSource creates a source reading below root (a CID or /ipfs/ path)
// through the node API at host:port.
func NewIPFSSource(host, port, root string, timeout time.Duration, log *slog.Logger) *IPFSSource {
	apiURL := fmt.Sprintf("%s:%s", host, port)
	sh := shell.NewShell(apiURL)
	sh.SetTimeout(timeout)

	return &IPFSSource{
		shell:       sh,
		apiURL:      apiURL,
		root:        "/ipfs/" + strings.TrimPrefix(strings.Trim(root, "/"), "ipfs/"),
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/%s?timeout=%s", apiURL, strings.Trim(root, "/"), timeout),
	}
}

// Fetch cats root/path.
func (s *IPFSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	ipfsPath := s.root + "/" + strings.TrimPrefix(path, "/")

	reader, err := s.shell.Cat(ipfsPath)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") {
			s.log.Debug("Artifact not found in IPFS",
				slog.String("path", ipfsPath),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrArtifactNotFound
		}

		s.log.Error("Failed to fetch artifact from IPFS",
			slog.String("path", ipfsPath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: failed to fetch from IPFS: %v", interfaces.ErrSourceUnavailable, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data from IPFS: %w", err)
	}

	s.log.Debug("Fetched artifact from IPFS",
		slog.String("path", ipfsPath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks that the IPFS node answers.
func (s *IPFSSource) Available(ctx context.Context) bool {
	if !s.shell.IsUp() {
		s.log.Debug("IPFS node unavailable", slog.String("api", s.apiURL))
		return false
	}
	return true
}

func (s *IPFSSource) Name() string {
	return fmt.Sprintf("ipfs-%s", s.apiURL)
}

func (s *IPFSSource) LocationURI() string {
	return s.locationURI
}
