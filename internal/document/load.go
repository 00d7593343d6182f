package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/tether/internal/security"
	httputil "github.com/jmylchreest/tether/internal/util/http"
)

// compressedExt marks xz-compressed snapshots.
const compressedExt = ".xz"

// LoadOptions configures Load.
type LoadOptions struct {
	// MaxBytes caps the decoded document. If zero,
	// security.DefaultMaxDocumentBytes is used.
	MaxBytes int64

	// Headers are sent with remote requests.
	Headers map[string]string

	// Timeout bounds a remote request. If zero, httputil.DefaultTimeout is used.
	Timeout time.Duration
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load reads a document from a file path or an http(s) URL. Locations ending
// in .xz are decompressed.
func Load(ctx context.Context, location string, opts LoadOptions) (*Document, error) {
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = security.DefaultMaxDocumentBytes
	}

	var raw io.ReadCloser
	if IsRemote(location) {
		body, err := httputil.Open(ctx, location, httputil.FetchOptions{Timeout: opts.Timeout, Headers: opts.Headers, MaxBytes: maxBytes})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch document: %w", err)
		}
		raw = body
	} else {
		f, err := os.Open(location) // #nosec G304 - document path is chosen by the user
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		raw = f
	}
	defer raw.Close()

	var r io.Reader = security.NewLimitedReader(raw, maxBytes)
	if isCompressed(location) {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = security.NewLimitedReader(xzr, maxBytes)
	}

	doc, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return doc, nil
}

// Save writes the document to path, xz-compressed when path ends in .xz.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return err
	}

	data := buf.Bytes()
	if isCompressed(path) {
		var compressed bytes.Buffer
		xzw, err := xz.NewWriter(&compressed)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		if _, err := xzw.Write(data); err != nil {
			return fmt.Errorf("failed to compress document: %w", err)
		}
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("failed to compress document: %w", err)
		}
		data = compressed.Bytes()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tether-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write document: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close document: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

func isCompressed(location string) bool {
	if i := strings.IndexAny(location, "?#"); i >= 0 && IsRemote(location) {
		location = location[:i]
	}
	return strings.HasSuffix(location, compressedExt)
}
