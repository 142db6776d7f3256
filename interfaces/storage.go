package interfaces

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ArtifactLocation is a parsed URI that identifies where contract build
// artifacts can be fetched from.
type ArtifactLocation struct {
	uri    string
	scheme string
	params url.Values
}

// NewArtifactLocation parses and validates an artifact location URI.
func NewArtifactLocation(uri string) (ArtifactLocation, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return ArtifactLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "file", "s3", "ipfs":
	default:
		return ArtifactLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, u.Scheme)
	}

	return ArtifactLocation{
		uri:    uri,
		scheme: scheme,
		params: u.Query(),
	}, nil
}

// String returns the URI string.
func (loc ArtifactLocation) String() string {
	return loc.uri
}

// Scheme returns the lower-cased URI scheme.
func (loc ArtifactLocation) Scheme() string {
	return loc.scheme
}

// GetParam returns a query parameter from the URI.
func (loc ArtifactLocation) GetParam(name string) string {
	return loc.params.Get(name)
}

// ArtifactSource provides read access to contract build artifacts
// (for example Hardhat's artifacts/ directory) by relative path.
type ArtifactSource interface {
	// Fetch returns the artifact stored under path.
	// Returns ErrArtifactNotFound if it does not exist.
	Fetch(ctx context.Context, path string) ([]byte, error)

	// Available checks if the source is accessible.
	Available(ctx context.Context) bool

	// Name returns a unique identifier for this source.
	Name() string

	// LocationURI returns the URI that identifies this source.
	LocationURI() string
}
