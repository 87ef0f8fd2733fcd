package handoff

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchOf(radius float32) instruction.Batch {
	return instruction.Batch{instruction.Circle{Position: common.Vec2(0, 0), Radius: radius}}
}

func TestSendThenTryReceiveBuffered(t *testing.T) {
	ch := New(1)

	require.NoError(t, ch.Send(batchOf(7)))

	got, ok := ch.TryReceive()
	require.True(t, ok)
	assert.Equal(t, batchOf(7), got)
}

func TestTryReceiveWithoutSendYieldsNothing(t *testing.T) {
	ch := New(1)

	got, ok := ch.TryReceive()
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, ch.Send(batchOf(1)))
	_, ok = ch.TryReceive()
	require.True(t, ok)

	// no duplicate delivery
	_, ok = ch.TryReceive()
	assert.False(t, ok)
}

func TestRendezvousSendDeliversToTryReceive(t *testing.T) {
	ch := New(0)
	sent := make(chan error, 1)

	go func() {
		sent <- ch.Send(batchOf(3))
	}()

	var got instruction.Batch
	require.Eventually(t, func() bool {
		b, ok := ch.TryReceive()
		if ok {
			got = b
		}
		return ok
	}, time.Second, time.Millisecond)

	assert.Equal(t, batchOf(3), got)
	assert.NoError(t, <-sent)
}

func TestSendBlocksUnderBackpressure(t *testing.T) {
	ch := New(1)
	require.NoError(t, ch.Send(batchOf(1)))

	sent := make(chan error, 1)
	go func() {
		sent <- ch.Send(batchOf(2))
	}()

	select {
	case <-sent:
		t.Fatal("send returned while the channel was full")
	case <-time.After(20 * time.Millisecond):
	}

	first, ok := ch.TryReceive()
	require.True(t, ok)
	assert.Equal(t, batchOf(1), first)

	require.NoError(t, <-sent)
	second, ok := ch.TryReceive()
	require.True(t, ok)
	assert.Equal(t, batchOf(2), second)
}

func TestSendAfterCloseReturnsErrClosed(t *testing.T) {
	ch := New(4)
	ch.Close()

	assert.ErrorIs(t, ch.Send(batchOf(1)), ErrClosed)
	assert.True(t, ch.Closed())

	_, ok := ch.TryReceive()
	assert.False(t, ok, "closed channel must not have accepted the batch")
}

func TestCloseUnblocksPendingSend(t *testing.T) {
	ch := New(0)
	sent := make(chan error, 1)

	go func() {
		sent <- ch.Send(batchOf(1))
	}()

	time.Sleep(10 * time.Millisecond)
	ch.Close()

	select {
	case err := <-sent:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("send did not observe close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ch := New(0)
	assert.False(t, ch.Closed())
	ch.Close()
	assert.NotPanics(t, ch.Close)
	assert.True(t, ch.Closed())
}

func TestNegativeCapacity(t *testing.T) {
	assert.Equal(t, 0, New(-3).Cap())
	assert.Equal(t, 2, New(2).Cap())
}
