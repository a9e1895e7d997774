// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/jayo"
)

func TestPipeWriteThenRead(t *testing.T) {
	p := New(0)
	src, sink := p.Halves()

	go func() {
		var buf jayo.Buffer
		buf.Write([]byte("hello pipe"))
		require.NoError(t, sink.Write(&buf, buf.Len()))
		require.NoError(t, sink.Close())
	}()

	var dst jayo.Buffer
	total := int64(0)
	for {
		n, err := src.ReadAtMostTo(&dst, 64)
		require.NoError(t, err)
		if n < 0 {
			break
		}
		total += n
	}
	assert.EqualValues(t, len("hello pipe"), total)

	out := make([]byte, dst.Len())
	dst.ReadFully(out)
	assert.Equal(t, "hello pipe", string(out))
}

func TestPipeBlocksWhenFull(t *testing.T) {
	p := New(16)
	src, sink := p.Halves()

	var big jayo.Buffer
	big.Write(make([]byte, 64))

	done := make(chan error, 1)
	go func() { done <- sink.Write(&big, 64) }()

	select {
	case <-done:
		t.Fatalf("Write should have blocked on a full pipe")
	case <-time.After(50 * time.Millisecond):
	}

	var drain jayo.Buffer
	for drain.Len() < 64 {
		if _, err := src.ReadAtMostTo(&drain, 8); err != nil {
			t.Fatalf("ReadAtMostTo: %v", err)
		}
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("Write never unblocked after draining")
	}
}

func TestPipeCloseSinkYieldsEOF(t *testing.T) {
	p := New(0)
	src, sink := p.Halves()
	require.NoError(t, sink.Close())

	var dst jayo.Buffer
	n, err := src.ReadAtMostTo(&dst, 10)
	require.NoError(t, err)
	assert.EqualValues(t, -1, n)
}

func TestPipeCloseSourceFailsPendingWrite(t *testing.T) {
	p := New(8)
	src, sink := p.Halves()
	require.NoError(t, src.Close())

	var buf jayo.Buffer
	buf.Write([]byte("x"))
	err := sink.Write(&buf, 1)
	assert.ErrorIs(t, err, jayo.ErrClosed)
}
