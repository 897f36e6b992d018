package sse

import (
	"bufio"
	"io"
	"strings"
)

// Framing constants.
const (
	// MaxLineSize is the maximum accepted length of a single stream line.
	// The bridge batches many envelopes into one data line, so this is
	// generous.
	MaxLineSize = 1 << 20

	// MaxLogFrameDataSize is the maximum frame data size to include in log
	// events. Larger frames are truncated in logs.
	MaxLogFrameDataSize = 4096
)

// Frame is one complete blank-line-terminated block from the event stream.
type Frame string

// frameScanner reassembles complete frames from a line-oriented stream.
type frameScanner struct {
	scanner *bufio.Scanner
	pending []string
}

func newFrameScanner(r io.Reader) *frameScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &frameScanner{scanner: sc}
}

// next returns the next complete frame. When the underlying stream ends, a
// non-empty partial frame is flushed first; after that, next returns ok=false
// and the scanner's error (nil on clean EOF).
func (f *frameScanner) next() (Frame, bool, error) {
	for f.scanner.Scan() {
		line := f.scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(f.pending) == 0 {
				continue
			}
			frame := Frame(strings.Join(f.pending, "\n"))
			f.pending = f.pending[:0]
			return frame, true, nil
		}
		f.pending = append(f.pending, line)
	}

	// Stream ended; flush any buffered partial frame.
	if len(f.pending) > 0 {
		frame := Frame(strings.Join(f.pending, "\n"))
		f.pending = nil
		return frame, true, nil
	}

	return "", false, f.scanner.Err()
}
