// Package changelog provides the append-only sinks that record every decision
// of a reconciliation run.
package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrClosed is returned by Close on an already closed log.
var ErrClosed = errors.New("change log already closed")

// File writes one line per entry to a file.
type File struct {
	mu     sync.Mutex
	f      *os.File
	w      *bufio.Writer
	err    error // first write error, reported by Close
	closed bool
}

// Create creates (or truncates) the file at path.
func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create change log: %w", err)
	}
	return &File{f: f, w: bufio.NewWriter(f)}, nil
}

// Name returns the file path.
func (l *File) Name() string {
	return l.f.Name()
}

// Println appends one line. Writes after Close are dropped.
func (l *File) Println(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.err != nil {
		return
	}
	if _, err := l.w.WriteString(line + "\n"); err != nil {
		l.err = err
	}
}

// Close flushes and closes the file. It returns the first write error, if any.
func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.closed = true

	err := l.err
	if ferr := l.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write change log: %w", err)
	}
	return nil
}

// Buffer keeps lines in memory.
type Buffer struct {
	mu     sync.Mutex
	lines  []string
	closed bool
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Println(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.lines = append(b.lines, line)
}

func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Lines returns a copy of the recorded lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// String returns the recorded lines joined by newlines.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}
