package artifacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// MultiSource tries each source in order and returns the first artifact found.
type MultiSource struct {
	sources []interfaces.ArtifactSource
	log     *slog.Logger
}

// NewMultiSource creates a fallback source over sources.
func NewMultiSource(sources []interfaces.ArtifactSource, log *slog.Logger) *MultiSource {
	return &MultiSource{
		sources: sources,
		log:     log,
	}
}

func (m *MultiSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	var errs []error

	for _, source := range m.sources {
		if !source.Available(ctx) {
			m.log.Debug("Source unavailable",
				slog.String("source", source.Name()),
				slog.String("path", path))
			errs = append(errs, fmt.Errorf("%s: %w", source.Name(), interfaces.ErrSourceUnavailable))
			continue
		}

		data, err := source.Fetch(ctx, path)
		if err == nil {
			m.log.Debug("Fetched artifact",
				slog.String("source", source.Name()),
				slog.String("path", path),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", source.Name(), err))
		m.log.Debug("Failed to fetch from source",
			slog.String("source", source.Name()),
			slog.String("path", path),
			"err", err)
	}

	m.log.Warn("All sources failed to fetch artifact",
		slog.String("path", path),
		slog.Int("failed_sources", len(errs)),
		slog.Duration("duration", time.Since(start)))

	return nil, fmt.Errorf("all sources failed to fetch %s: %w", path, errors.Join(errs...))
}

// Available reports whether any source is available.
func (m *MultiSource) Available(ctx context.Context) bool {
	for _, source := range m.sources {
		if source.Available(ctx) {
			return true
		}
	}
	return false
}

func (m *MultiSource) Name() string {
	return "multi-source"
}

func (m *MultiSource) LocationURI() string {
	locations := make([]string, 0, len(m.sources))
	for _, source := range m.sources {
		locations = append(locations, source.LocationURI())
	}
	return "multi:[" + strings.Join(locations, ",") + "]"
}
