// Package assets resolves image references into embeddable bytes
// before a render begins. A failed fetch degrades to the bare
// reference instead of failing the render.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Asset is an image reference, optionally resolved to embeddable bytes.
type Asset struct {
	// Ref is the original reference: a URL or a local file path. It is
	// what the document falls back to when the bytes are unavailable.
	Ref  string
	MIME string
	Data []byte
}

// Embedded reports whether the asset carries embeddable bytes.
func (a Asset) Embedded() bool { return len(a.Data) > 0 }

// Fetcher loads image references over HTTP or from the local
// filesystem.
type Fetcher struct {
	client *http.Client
	// maxBytes caps a fetched asset; larger responses degrade to the
	// bare reference.
	maxBytes int64
}

// NewFetcher constructs a Fetcher with a bounded HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		maxBytes: 8 << 20,
	}
}

// Fetch resolves ref into an Asset. On any failure the returned asset
// keeps the reference and no bytes; the error is informational and the
// caller may proceed with the degraded asset.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (Asset, error) {
	if ref == "" {
		return Asset{}, nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchHTTP(ctx, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return Asset{Ref: ref}, fmt.Errorf("read asset %s: %w", ref, err)
	}
	return Asset{Ref: ref, MIME: http.DetectContentType(data), Data: data}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, ref string) (Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return Asset{Ref: ref}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Asset{Ref: ref}, fmt.Errorf("fetch asset %s: %w", ref, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return Asset{Ref: ref}, fmt.Errorf("fetch asset %s: status %d", ref, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return Asset{Ref: ref}, fmt.Errorf("read asset %s: %w", ref, err)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return Asset{Ref: ref, MIME: mime, Data: data}, nil
}

// ResolveAll fetches every reference concurrently and returns the
// assets in input order. Resolution always completes before the caller
// builds a document tree; individual failures degrade per-asset and
// never abort the group.
func (f *Fetcher) ResolveAll(ctx context.Context, refs ...string) []Asset {
	out := make([]Asset, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			out[i], _ = f.Fetch(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
