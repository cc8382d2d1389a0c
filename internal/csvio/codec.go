package csvio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression applied to a CSV file.
type Codec string

// Supported codecs, selected by file extension.
const (
	CodecNone Codec = "none"
	CodecZstd Codec = "zstd" // .zst
	CodecS2   Codec = "s2"   // .s2
	CodecLZ4  Codec = "lz4"  // .lz4
)

// CodecFor returns the codec implied by the extension of path.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CodecZstd
	case ".s2":
		return CodecS2
	case ".lz4":
		return CodecLZ4
	default:
		return CodecNone
	}
}

// NewWriter wraps w with the codec's compressor.
//
// Closing the returned writer flushes the compressor but does not close w.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecNone, "":
		return nopWriteCloser{w}, nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	case CodecS2:
		return s2.NewWriter(w), nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
}

// NewReader wraps r with the codec's decompressor.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case CodecNone, "":
		return io.NopCloser(r), nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CodecS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
}

// Create creates path and returns a writer compressing by its extension.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path) //nolint:gosec // Path comes from the command line.
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	w, err := NewWriter(f, CodecFor(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: w, file: f}, nil
}

// Open opens path and returns a reader decompressing by its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the command line.
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(f, CodecFor(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: r, file: f}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// fileWriter closes the compressor before the file underneath it.
type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (w *fileWriter) Close() error {
	return errors.Join(w.WriteCloser.Close(), w.file.Close())
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.file.Close())
}
