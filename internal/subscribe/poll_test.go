package subscribe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollEventsReportsChange(t *testing.T) {
	var value atomic.Int64
	value.Store(10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := PollEvents(ctx, 5*time.Millisecond, func() (int, error) {
		return int(value.Load()), nil
	})

	select {
	case <-events:
		t.Fatal("event without a change")
	case <-time.After(50 * time.Millisecond):
	}

	value.Store(20)
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("change not reported")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 5*time.Millisecond)
}

func TestPollEventsIgnoresErrors(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := PollEvents(ctx, 5*time.Millisecond, func() (int, error) {
		calls.Add(1)
		return 0, errors.New("busy")
	})

	require.Eventually(t, func() bool { return calls.Load() > 3 }, 5*time.Second, 5*time.Millisecond)
	select {
	case <-events:
		t.Fatal("errors must not be reported as changes")
	default:
	}
	assert.Greater(t, calls.Load(), int32(3))
}
