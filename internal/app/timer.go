package app

import (
	"sync"
	"time"
)

const warningThreshold = 60

// Ticker is the part of time.Ticker the countdown needs; tests swap in a manual one.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

func (t stdTicker) C() <-chan time.Time { return t.t.C }
func (t stdTicker) Stop()               { t.t.Stop() }

// countdown drives one timed session. Ticks arriving after stop are dropped by
// the controller, which only honours its current countdown.
type countdown struct {
	remaining int
	ticker    Ticker
	done      chan struct{}
	stopOnce  sync.Once
}

func newCountdown(seconds int, newTicker TickerFunc) *countdown {
	return &countdown{
		remaining: seconds,
		ticker:    newTicker(time.Second),
		done:      make(chan struct{}),
	}
}

func (cd *countdown) run(tick func()) {
	for {
		select {
		case <-cd.done:
			return
		case <-cd.ticker.C():
			tick()
		}
	}
}

// stop never blocks, so it is safe from inside tick.
func (cd *countdown) stop() {
	cd.stopOnce.Do(func() {
		close(cd.done)
		cd.ticker.Stop()
	})
}

func (cd *countdown) view() TimerView {
	return TimerView{
		Remaining: cd.remaining,
		Display:   FormatClock(cd.remaining),
		Warning:   cd.remaining < warningThreshold,
	}
}
