// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipe implements jayo's in-memory producer/consumer coupling:
// a bounded internal Buffer shared by a Source and a Sink half,
// coordinated by a mutex and two condition variables rather than a
// channel, since the transferred unit is a variable-length run of bytes
// rather than a fixed Go value.
package pipe

import (
	"sync"

	"code.hybscloud.com/jayo"
)

// Pipe holds an internal Buffer capped at maxBufferSize bytes. Source
// and Sink are obtained once via Halves and are each a RawReader/
// RawWriter respectively.
type Pipe struct {
	mu   sync.Mutex
	full *sync.Cond // signalled when space frees up or the sink closes
	drn  *sync.Cond // signalled when bytes arrive or the source closes

	buf           jayo.Buffer
	maxBufferSize int64

	sourceClosed bool
	sinkClosed   bool
}

// New constructs a Pipe whose internal buffer never holds more than
// maxBufferSize bytes; a Sink.Write blocks once that cap is reached
// until the Source drains or either side closes. maxBufferSize <= 0
// means unbounded.
func New(maxBufferSize int64) *Pipe {
	p := &Pipe{maxBufferSize: maxBufferSize}
	p.full = sync.NewCond(&p.mu)
	p.drn = sync.NewCond(&p.mu)
	return p
}

// Halves returns the two RawReader/RawWriter endpoints of the pipe.
func (p *Pipe) Halves() (*Source, *Sink) {
	return &Source{p: p}, &Sink{p: p}
}

// Source is the read half of a Pipe.
type Source struct{ p *Pipe }

// Sink is the write half of a Pipe.
type Sink struct{ p *Pipe }

// ReadAtMostTo implements jayo.RawReader: it blocks while the internal
// buffer is empty and the sink is still open, then moves up to
// byteCount bytes into dst. It returns -1 when the sink has closed and
// the buffer has drained.
func (s *Source) ReadAtMostTo(dst *jayo.Buffer, byteCount int64) (int64, error) {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sourceClosed {
		return 0, jayo.ErrClosed
	}
	for p.buf.IsEmpty() && !p.sinkClosed {
		p.drn.Wait()
	}
	if p.sourceClosed {
		return 0, jayo.ErrClosed
	}
	if p.buf.IsEmpty() {
		return -1, nil
	}
	n := p.buf.Len()
	if n > byteCount {
		n = byteCount
	}
	moved, err := dst.WriteFromBuffer(&p.buf, n)
	if err != nil {
		return 0, err
	}
	p.full.Signal()
	return moved, nil
}

// Close marks the source closed; subsequent Source operations fail
// with "pipe closed" and any blocked Sink.Write is woken to observe it.
func (s *Source) Close() error {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sourceClosed {
		return nil
	}
	p.sourceClosed = true
	p.buf.Clear()
	p.full.Broadcast()
	p.drn.Broadcast()
	return nil
}

// Write implements jayo.RawWriter: it blocks while the internal buffer
// is at capacity and the source is still open, then moves exactly
// byteCount bytes from src into the pipe's buffer.
func (s *Sink) Write(src *jayo.Buffer, byteCount int64) error {
	p := s.p
	remaining := byteCount
	for remaining > 0 {
		p.mu.Lock()
		if p.sinkClosed {
			p.mu.Unlock()
			return jayo.ErrClosed
		}
		for p.maxBufferSize > 0 && p.buf.Len() >= p.maxBufferSize && !p.sourceClosed {
			p.full.Wait()
		}
		if p.sinkClosed {
			p.mu.Unlock()
			return jayo.ErrClosed
		}
		if p.sourceClosed {
			p.mu.Unlock()
			return jayo.ErrClosed
		}
		room := remaining
		if p.maxBufferSize > 0 {
			avail := p.maxBufferSize - p.buf.Len()
			if avail < room {
				room = avail
			}
		}
		if room <= 0 {
			p.mu.Unlock()
			continue
		}
		moved, err := p.buf.WriteFromBuffer(src, room)
		if err != nil {
			p.mu.Unlock()
			return err
		}
		remaining -= moved
		p.drn.Signal()
		p.mu.Unlock()
	}
	return nil
}

// Flush is a no-op: the pipe's buffer has no further downstream to
// push into beyond the Source itself.
func (s *Sink) Flush() error { return nil }

// Close marks the sink closed; any blocked Source.ReadAtMostTo call
// observes EOF once the remaining buffered bytes are drained.
func (s *Sink) Close() error {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sinkClosed {
		return nil
	}
	p.sinkClosed = true
	p.full.Broadcast()
	p.drn.Broadcast()
	return nil
}
