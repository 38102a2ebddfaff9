package attempt

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is the tick source of a countdown.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct {
	t *time.Ticker
}

func (t stdTicker) C() <-chan time.Time { return t.t.C }
func (t stdTicker) Stop()               { t.t.Stop() }

var newTicker = func(d time.Duration) Ticker { return stdTicker{time.NewTicker(d)} } // mockable

// countdown is a cancellable one-second countdown.
// Its goroutine is the single writer of the remaining seconds.
type countdown struct {
	remaining int64
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

// startCountdown counts down from `seconds`. onTick runs after every tick with the
// remaining seconds; onExpire runs once when 0 is reached, after the countdown
// has released itself, so it may safely stop the countdown.
func startCountdown(seconds int, onTick func(remaining int), onExpire func()) *countdown {
	cd := &countdown{
		remaining: int64(seconds),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	ticker := newTicker(time.Second)

	go func() {
		expired := false
		defer func() {
			if expired {
				onExpire()
			}
		}()
		defer close(cd.done)
		defer ticker.Stop()

		for {
			select {
			case <-cd.stop:
				return
			case <-ticker.C():
				// a stop requested concurrently with a tick wins
				select {
				case <-cd.stop:
					return
				default:
				}
				left := atomic.AddInt64(&cd.remaining, -1)
				if onTick != nil {
					onTick(int(left))
				}
				if left <= 0 {
					expired = true
					return
				}
			}
		}
	}()
	return cd
}

// Remaining returns the seconds left.
func (cd *countdown) Remaining() int {
	return int(atomic.LoadInt64(&cd.remaining))
}

// Stop cancels the countdown and waits for it to release. Safe to call many times.
func (cd *countdown) Stop() {
	cd.stopOnce.Do(func() { close(cd.stop) })
	<-cd.done
}
