// Package fileio opens and creates record files with transparent
// gzip and zstd compression, chosen by file suffix or, on the read
// side, by magic bytes. Pipelines routinely ship .fasta.gz and
// .mgf.zst inputs; codecs should not need to care.
package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const bufferSize = 1 << 20

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error { return w.close() }

// Open opens path for buffered reading, unwrapping gzip or zstd
// compression when the suffix or the leading magic bytes say so.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input: %w", err)
	}
	rc, err := Wrap(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

// Wrap layers decompression over an already-open source. The name is
// only consulted for its suffix and may be empty.
func Wrap(f io.ReadCloser, name string) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(f, bufferSize)
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".gz") || hasMagic(br, 0x1f, 0x8b):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("cannot open gzip input: %w", err)
		}
		return &readCloser{Reader: gz, close: func() error {
			_ = gz.Close()
			return f.Close()
		}}, nil
	case strings.HasSuffix(lower, ".zst") || hasMagic(br, 0x28, 0xb5):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("cannot open zstd input: %w", err)
		}
		return &readCloser{Reader: zr, close: func() error {
			zr.Close()
			return f.Close()
		}}, nil
	}

	return &readCloser{Reader: br, close: f.Close}, nil
}

func hasMagic(br *bufio.Reader, a, b byte) bool {
	header, err := br.Peek(2)
	return err == nil && header[0] == a && header[1] == b
}

// Create creates path for buffered writing, layering gzip or zstd
// compression when the suffix asks for it. Close flushes everything
// down to the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create output: %w", err)
	}
	bw := bufio.NewWriterSize(f, bufferSize)
	lower := strings.ToLower(path)

	closeAll := func(inner func() error) func() error {
		return func() error {
			if err := inner(); err != nil {
				_ = f.Close()
				return err
			}
			if err := bw.Flush(); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		}
	}

	switch {
	case strings.HasSuffix(lower, ".gz"):
		gz := gzip.NewWriter(bw)
		return &writeCloser{Writer: gz, close: closeAll(gz.Close)}, nil
	case strings.HasSuffix(lower, ".zst"):
		zw, err := zstd.NewWriter(bw)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cannot create zstd output: %w", err)
		}
		return &writeCloser{Writer: zw, close: closeAll(zw.Close)}, nil
	}

	return &writeCloser{Writer: bw, close: closeAll(func() error { return nil })}, nil
}
