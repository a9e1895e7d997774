// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cancel

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/jayo"
)

type fakeResource struct {
	closed atomic.Bool
}

func (f *fakeResource) Close() error {
	f.closed.Store(true)
	return nil
}

func TestCancelTokenCancelClosesRegisteredResources(t *testing.T) {
	tok := Background()
	res := &fakeResource{}

	release, err := tok.Checkpoint(res)
	require.NoError(t, err)
	defer release()

	tok.Cancel()
	assert.True(t, res.closed.Load())
	assert.True(t, tok.Cancelled())
	assert.ErrorIs(t, tok.Err(), jayo.ErrInterrupted)
}

func TestCancelTokenCheckpointFailsWhenAlreadyCancelled(t *testing.T) {
	tok := Background()
	tok.Cancel()

	_, err := tok.Checkpoint(&fakeResource{})
	assert.ErrorIs(t, err, jayo.ErrInterrupted)
}

func TestWithTimeoutExpiresAndErrTimeout(t *testing.T) {
	tok, cancel := WithTimeout(nil, 20*time.Millisecond)
	defer cancel()

	time.Sleep(40 * time.Millisecond)
	err := tok.Err()
	assert.True(t, errors.Is(err, jayo.ErrTimeout))
	assert.True(t, errors.Is(err, jayo.ErrInterrupted))
}

func TestWithDeadlineInheritsTighterOfParentAndChild(t *testing.T) {
	parent, cancelParent := WithTimeout(nil, 10*time.Millisecond)
	defer cancelParent()

	child, cancelChild := WithTimeout(parent, time.Hour)
	defer cancelChild()

	childDeadline, ok := child.Deadline()
	require.True(t, ok)
	parentDeadline, _ := parent.Deadline()
	assert.Equal(t, parentDeadline, childDeadline)
}

func TestWatchdogClosesResourceAtDeadline(t *testing.T) {
	tok, cancel := WithTimeout(nil, 15*time.Millisecond)
	defer cancel()

	res := &fakeResource{}
	release, err := tok.Checkpoint(res)
	require.NoError(t, err)
	defer release()

	require.Eventually(t, res.closed.Load, time.Second, 5*time.Millisecond)
}

func TestWatchdogWithdrawnOnRelease(t *testing.T) {
	tok, cancel := WithTimeout(nil, 200*time.Millisecond)
	defer cancel()

	res := &fakeResource{}
	release, err := tok.Checkpoint(res)
	require.NoError(t, err)
	release()

	time.Sleep(250 * time.Millisecond)
	assert.False(t, res.closed.Load())
}
