// Package reader provides input plumbing for profiling sources:
// newline normalization, BOM stripping and stream decompression.
package reader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// UniversalReader wraps an io.Reader to replace carriage returns with
// newlines and strip a leading BOM. This lets the CSV and LDJSON
// readers delimit lines regardless of the source platform.
type UniversalReader struct {
	r io.Reader
}

func (r *UniversalReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)

	// Detect and remove BOM.
	if bytes.HasPrefix(buf, bom) {
		copy(buf, buf[len(bom):])
		n -= len(bom)
	}

	// Replace carriage returns with newlines.
	for i, b := range buf {
		if b == '\r' {
			buf[i] = '\n'
		}
	}

	return n, err
}

func (r *UniversalReader) Close() error {
	if rc, ok := r.r.(io.Closer); ok {
		return rc.Close()
	}
	return nil
}

func NewUniversalReader(r io.Reader) *UniversalReader {
	return &UniversalReader{r}
}

// DetectType inspects a file path's extensions and returns the data
// format ("csv", "json", "ldjson") and compression ("gzip", "bzip2")
// if recognized.
func DetectType(url string) (string, string) {
	_, name := path.Split(url)

	exts := strings.Split(name, ".")[1:]

	var (
		compression string
		format      string
	)

	for _, ext := range exts {
		switch ext {
		case "gz", "gzip":
			compression = "gzip"

		case "bz2", "bzip2":
			compression = "bzip2"

		case "csv":
			format = "csv"

		case "json":
			format = "json"

		case "ldjson":
			format = "ldjson"
		}
	}

	return format, compression
}

// Input is an open profiling source: a file or stdin, decompressed and
// newline-normalized.
type Input struct {
	Name        string
	Compression string

	reader io.Reader
	file   *os.File
}

// Read implements the io.Reader interface.
func (r *Input) Read(buf []byte) (int, error) {
	return r.reader.Read(buf)
}

// Close closes the underlying file, if any.
func (r *Input) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Open opens a source by name with optional compression. An empty
// name reads from stdin; an empty compression is detected from the
// file extension.
func Open(name, compr string) (*Input, error) {
	r := &Input{
		Name: name,
	}

	if compr == "" {
		_, compr = DetectType(name)
	}

	switch compr {
	case "bzip2", "gzip", "":
	default:
		return nil, fmt.Errorf("unknown compression type %s", compr)
	}

	if name == "" {
		r.reader = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		r.file = file
		r.reader = file
	}

	switch compr {
	case "gzip":
		gr, err := gzip.NewReader(r.reader)
		if err != nil {
			r.Close()
			return nil, err
		}

		r.reader = gr

	case "bzip2":
		r.reader = bzip2.NewReader(r.reader)
	}

	r.Compression = compr
	r.reader = NewUniversalReader(r.reader)

	return r, nil
}
