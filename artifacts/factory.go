package artifacts

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// SourceFactory creates artifact sources from location URIs.
type SourceFactory struct {
	log *slog.Logger
}

// NewSourceFactory creates a factory logging through log.
func NewSourceFactory(log *slog.Logger) *SourceFactory {
	return &SourceFactory{log: log}
}

// SourceFor creates a source from a location.
//
// Supported schemes:
//   - file:///absolute/path or file://./relative/path
//   - s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=us-east-1&endpoint=http://minio:9000
//   - ipfs://host:port/<root cid>?timeout=30s
func (f *SourceFactory) SourceFor(location interfaces.ArtifactLocation) (interfaces.ArtifactSource, error) {
	u, err := url.Parse(location.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	switch location.Scheme() {
	case "file":
		return f.createFileSource(u)
	case "s3":
		return f.createS3Source(u)
	case "ipfs":
		return f.createIPFSSource(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %s", interfaces.ErrInvalidLocationURI, u.Scheme)
	}
}

// SourceForURIs parses a comma-separated list of URIs. A single URI yields
// its source directly; several are combined into a MultiSource in order.
func (f *SourceFactory) SourceForURIs(uris string) (interfaces.ArtifactSource, error) {
	var sources []interfaces.ArtifactSource
	for _, raw := range strings.Split(uris, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		location, err := interfaces.NewArtifactLocation(raw)
		if err != nil {
			return nil, err
		}
		source, err := f.SourceFor(location)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	switch len(sources) {
	case 0:
		return nil, fmt.Errorf("%w: no artifact location given", interfaces.ErrInvalidLocationURI)
	case 1:
		return sources[0], nil
	default:
		return NewMultiSource(sources, f.log), nil
	}
}

func (f *SourceFactory) createFileSource(u *url.URL) (interfaces.ArtifactSource, error) {
	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %s", interfaces.ErrInvalidLocationURI, u.String())
	}
	return NewFileSource(path, f.log), nil
}

func (f *SourceFactory) createS3Source(u *url.URL) (interfaces.ArtifactSource, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing bucket in %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	query := u.Query()
	opts := S3Options{
		Bucket:   u.Host,
		Prefix:   strings.TrimPrefix(u.Path, "/"),
		Region:   query.Get("region"),
		Endpoint: query.Get("endpoint"),
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if u.User != nil {
		opts.AccessKey = u.User.Username()
		opts.SecretKey, _ = u.User.Password()
	}

	return NewS3Source(opts, f.log)
}

func (f *SourceFactory) createIPFSSource(u *url.URL) (interfaces.ArtifactSource, error) {
	root := strings.Trim(u.Path, "/")
	if root == "" {
		return nil, fmt.Errorf("%w: missing root CID in %s", interfaces.ErrInvalidLocationURI, u.String())
	}

	port := u.Port()
	if port == "" {
		port = "5001"
	}

	timeout := 30 * time.Second
	if raw := u.Query().Get("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout %q", interfaces.ErrInvalidLocationURI, raw)
		}
		timeout = d
	}

	return NewIPFSSource(u.Hostname(), port, root, timeout, f.log), nil
}
