package attempt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
}

func (ft *fakeTicker) C() <-chan time.Time { return ft.c }
func (ft *fakeTicker) Stop()               { close(ft.stopped) }

func (ft *fakeTicker) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case ft.c <- time.Now():
		case <-time.After(time.Second):
			t.Fatalf("tick %d was not consumed", i+1)
		}
	}
}

func mockTicker(t *testing.T) *fakeTicker {
	ft := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	orig := newTicker
	newTicker = func(time.Duration) Ticker { return ft }
	t.Cleanup(func() { newTicker = orig })
	return ft
}

func TestCountdown_expires(t *testing.T) {
	ft := mockTicker(t)
	ticks := make(chan int, 10)
	expired := make(chan struct{}, 2)

	cd := startCountdown(3, func(r int) { ticks <- r }, func() { expired <- struct{}{} })
	ft.tick(t, 3)

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("countdown did not expire")
	}
	assert.Equal(t, []int{2, 1, 0}, []int{<-ticks, <-ticks, <-ticks})
	assert.Equal(t, 0, cd.Remaining())

	cd.Stop() // after expiry is a no-op
	cd.Stop()
	<-ft.stopped
	assert.Len(t, expired, 0)
}

func TestCountdown_stop(t *testing.T) {
	ft := mockTicker(t)
	expired := false

	cd := startCountdown(60, nil, func() { expired = true })
	ft.tick(t, 2)
	cd.Stop()

	assert.Equal(t, 58, cd.Remaining())
	assert.False(t, expired)
	select {
	case <-ft.stopped:
	default:
		t.Error("ticker was not stopped")
	}
	select {
	case ft.c <- time.Now():
		t.Error("stopped countdown still consumes ticks")
	case <-time.After(50 * time.Millisecond):
	}
}
