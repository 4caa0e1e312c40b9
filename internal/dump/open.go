package dump

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Open opens a local dump file or an http(s) URL. Sources ending in .bz2 or
// .gz are decompressed while streaming; nothing is spooled to disk. The
// caller must close the returned reader.
func Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if isHTTPURL(src) {
		return openHTTP(ctx, src)
	}
	return openLocal(src)
}

func openLocal(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}

	rc, err := decompress(compressionOf(path), f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

func openHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}

	resp, err := http.DefaultClient.Do(req) // #nosec G107 - URL is user-provided.
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("open dump: GET %s: unexpected status %s", url, resp.Status)
	}

	rc, err := decompress(compressionOf(url), resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	return rc, nil
}

type compression int

const (
	compressionNone compression = iota
	compressionBzip2
	compressionGzip
)

// compressionOf inspects the file extension, ignoring URL query and fragment.
func compressionOf(src string) compression {
	lower := strings.ToLower(src)
	if isHTTPURL(lower) {
		if idx := strings.IndexAny(lower, "?#"); idx >= 0 {
			lower = lower[:idx]
		}
	}

	switch {
	case strings.HasSuffix(lower, ".bz2"):
		return compressionBzip2
	case strings.HasSuffix(lower, ".gz"):
		return compressionGzip
	default:
		return compressionNone
	}
}

// decompress wraps rc so that Close always reaches the underlying source.
func decompress(c compression, rc io.ReadCloser) (io.ReadCloser, error) {
	switch c {
	case compressionBzip2:
		return struct {
			io.Reader
			io.Closer
		}{
			Reader: bzip2.NewReader(rc),
			Closer: rc,
		}, nil
	case compressionGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &gzipReadCloser{Reader: gz, src: rc}, nil
	default:
		return rc, nil
	}
}

type gzipReadCloser struct {
	*gzip.Reader
	src io.Closer
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	if err := g.src.Close(); err != nil {
		return err
	}
	return gzErr
}

func isHTTPURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
