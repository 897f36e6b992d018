package sse

import (
	"strings"
	"testing"
)

func TestFrameScanner(t *testing.T) {
	t.Run("SingleFrame", func(t *testing.T) {
		fs := newFrameScanner(strings.NewReader("id: 1\ndata: [{}]\n\n"))

		frame, ok, err := fs.next()
		if err != nil {
			t.Fatalf("next() error = %v", err)
		}
		if !ok {
			t.Fatal("next() ok = false, want frame")
		}
		if frame != "id: 1\ndata: [{}]" {
			t.Errorf("frame = %q", frame)
		}

		_, ok, err = fs.next()
		if ok || err != nil {
			t.Errorf("next() after end = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("MultipleFrames", func(t *testing.T) {
		fs := newFrameScanner(strings.NewReader("id: 1\ndata: a\n\nid: 2\ndata: b\n\n"))

		var frames []Frame
		for {
			frame, ok, err := fs.next()
			if err != nil {
				t.Fatalf("next() error = %v", err)
			}
			if !ok {
				break
			}
			frames = append(frames, frame)
		}

		if len(frames) != 2 {
			t.Fatalf("got %d frames, want 2", len(frames))
		}
		if frames[0] != "id: 1\ndata: a" || frames[1] != "id: 2\ndata: b" {
			t.Errorf("frames = %q", frames)
		}
	})

	t.Run("LeadingBlankLinesSkipped", func(t *testing.T) {
		fs := newFrameScanner(strings.NewReader("\n\n\ndata: x\n\n"))

		frame, ok, _ := fs.next()
		if !ok || frame != "data: x" {
			t.Errorf("next() = (%q, %v)", frame, ok)
		}
	})

	t.Run("PartialFrameFlushedAtEOF", func(t *testing.T) {
		// Stream cut mid-frame, no trailing blank line.
		fs := newFrameScanner(strings.NewReader("id: 9\ndata: y"))

		frame, ok, _ := fs.next()
		if !ok || frame != "id: 9\ndata: y" {
			t.Errorf("next() = (%q, %v)", frame, ok)
		}

		_, ok, err := fs.next()
		if ok || err != nil {
			t.Errorf("next() after flush = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("EmptyStream", func(t *testing.T) {
		fs := newFrameScanner(strings.NewReader(""))

		_, ok, err := fs.next()
		if ok || err != nil {
			t.Errorf("next() = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("WhitespaceOnlyLineTerminatesFrame", func(t *testing.T) {
		fs := newFrameScanner(strings.NewReader("data: z\n \ndata: w\n\n"))

		frame, ok, _ := fs.next()
		if !ok || frame != "data: z" {
			t.Fatalf("first frame = (%q, %v)", frame, ok)
		}
		frame, ok, _ = fs.next()
		if !ok || frame != "data: w" {
			t.Errorf("second frame = (%q, %v)", frame, ok)
		}
	})
}
