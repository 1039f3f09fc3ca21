// Package monitor infers import outcomes from the tail of the ARES
// server log, the only completion signal the server exposes.
package monitor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// tailBlockSize is the window step used when scanning back from the end
// of the file for line breaks.
const tailBlockSize = 4096

// Tail returns up to n lines from the end of f, in file order. A file
// holding fewer than n lines yields every line it has. The file offset
// is left unspecified; callers must not rely on it.
func Tail(f *os.File, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	// Grow the window back from the end until it holds one line break
	// more than requested (so a partial first line cannot be mistaken
	// for a complete one), falling back to the whole file when it is
	// smaller than the request.
	var buf []byte
	for window := int64(tailBlockSize); ; window += tailBlockSize {
		if window > size {
			window = size
		}

		buf = make([]byte, window)
		if _, err := f.ReadAt(buf, size-window); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if window == size || bytes.Count(buf, []byte{'\n'}) > n {
			break
		}
	}

	s := strings.TrimSuffix(string(buf), "\n")
	if s == "" {
		return nil, nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
