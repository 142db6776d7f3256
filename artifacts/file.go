package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// FileSource reads artifacts from a local directory, usually Hardhat's
// artifacts/ output.
type FileSource struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileSource creates a source rooted at baseDir.
func NewFileSource(baseDir string, log *slog.Logger) *FileSource {
	return &FileSource{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}
}

// Fetch reads the artifact at path relative to the base directory.
func (s *FileSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	// Rooting the path before cleaning keeps it inside baseDir.
	filePath := filepath.Join(s.baseDir, filepath.Clean("/"+path))

	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, interfaces.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched artifact from file",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return data, nil
}

// Available checks that the base directory exists.
func (s *FileSource) Available(ctx context.Context) bool {
	if _, err := os.Stat(s.baseDir); err != nil {
		s.log.Debug("File source unavailable", "err", err)
		return false
	}
	return true
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

func (s *FileSource) LocationURI() string {
	return s.locationURI
}
