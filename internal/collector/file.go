package collector

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileFetcher reads the dataset from a local file; "-" reads stdin.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Name() string { return "file:" + f.Path }

func (f *FileFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return file, nil
}
