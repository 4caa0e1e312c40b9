// Package output writes extracted records as newline-delimited JSON.
//
// Two modes exist. Live destinations ("-" for stdout, or any /dev/ path) are
// flushed after every record. File destinations are written to "<target>.tmp"
// through a large buffer and renamed over the target only by Commit, so a
// reader of the target path never sees a partial run.
package output

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// StdoutTarget selects the process standard output.
	StdoutTarget = "-"
	// TmpSuffix is appended to file targets while a run is in progress.
	TmpSuffix = ".tmp"

	devPrefix      = "/dev/"
	fileBufferSize = 1 << 20
	filePerm       = 0o644
)

// ErrClosed is returned when writing to a committed or closed sink.
var ErrClosed = errors.New("output: sink closed")

// Sink is an order-preserving record writer. It is not safe for concurrent use.
type Sink struct {
	target string
	tmp    string
	live   bool

	file  *os.File // nil for live sinks not owned by the Sink
	w     *bufio.Writer
	enc   *json.Encoder
	count int
	done  bool
}

// IsLive reports whether target is a streaming destination.
func IsLive(target string) bool {
	return target == StdoutTarget || strings.HasPrefix(target, devPrefix)
}

// Open creates a sink for target.
func Open(target string) (*Sink, error) {
	if target == "" {
		return nil, fmt.Errorf("output: empty target")
	}

	if target == StdoutTarget {
		return NewLive(os.Stdout), nil
	}

	if IsLive(target) {
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
		if err != nil {
			return nil, fmt.Errorf("output: open %s: %w", target, err)
		}
		s := NewLive(f)
		s.target = target
		s.file = f
		return s, nil
	}

	tmp := target + TmpSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, fmt.Errorf("output: create %s: %w", tmp, err)
	}

	w := bufio.NewWriterSize(f, fileBufferSize)
	return &Sink{
		target: target,
		tmp:    tmp,
		file:   f,
		w:      w,
		enc:    newEncoder(w),
	}, nil
}

// NewLive returns a sink that flushes to w after every record. The caller
// keeps ownership of w.
func NewLive(w io.Writer) *Sink {
	bw := bufio.NewWriter(w)
	return &Sink{
		target: StdoutTarget,
		live:   true,
		w:      bw,
		enc:    newEncoder(bw),
	}
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// Target returns the destination the sink was opened for.
func (s *Sink) Target() string { return s.target }

// Live reports whether the sink flushes per record.
func (s *Sink) Live() bool { return s.live }

// Count returns the number of records written so far.
func (s *Sink) Count() int { return s.count }

// Write serializes v as one JSON line.
func (s *Sink) Write(v any) error {
	if s.done {
		return ErrClosed
	}
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode record %d: %w", s.count+1, err)
	}
	s.count++

	if s.live {
		if err := s.w.Flush(); err != nil {
			return fmt.Errorf("output: flush %s: %w", s.target, err)
		}
	}
	return nil
}

// Commit finishes the run. For file targets the temporary file is flushed,
// synced and renamed over the target, replacing any previous file.
func (s *Sink) Commit() error {
	if s.done {
		return ErrClosed
	}
	s.done = true

	if err := s.w.Flush(); err != nil {
		s.release()
		return fmt.Errorf("output: flush %s: %w", s.target, err)
	}

	if s.live {
		if s.file != nil {
			return s.file.Close()
		}
		return nil
	}

	if err := s.file.Sync(); err != nil {
		s.release()
		return fmt.Errorf("output: sync %s: %w", s.tmp, err)
	}
	if err := s.file.Close(); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("output: close %s: %w", s.tmp, err)
	}
	if err := os.Rename(s.tmp, s.target); err != nil {
		return fmt.Errorf("output: rename %s: %w", s.tmp, err)
	}
	return nil
}

// Close abandons an uncommitted sink. The temporary file is discarded and
// the target is left untouched. Close after Commit is a no-op.
func (s *Sink) Close() error {
	if s.done {
		return nil
	}
	s.done = true

	if s.live {
		err := s.w.Flush()
		if s.file != nil {
			if cerr := s.file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}

	s.release()
	return nil
}

func (s *Sink) release() {
	if s.live {
		return
	}
	_ = s.file.Close()
	_ = os.Remove(s.tmp)
}
