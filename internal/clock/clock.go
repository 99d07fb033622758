// Package clock drives session time through an injectable scheduler.
package clock

import "time"

// TickInterval is the period between clock ticks.
const TickInterval = time.Second

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the timer was still
	// pending. A stopped timer never fires.
	Stop() bool
}

// Scheduler supplies the current time and one-shot callbacks. Callbacks must
// run on the same goroutine that delivers key events.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Mode selects between counting down and measuring elapsed time.
type Mode int

// Clock modes.
const (
	Countdown Mode = iota
	Stopwatch
)

// Clock ticks once per interval while running. In countdown mode it expires
// after the configured number of ticks.
type Clock struct {
	sched    Scheduler
	mode     Mode
	interval time.Duration
	total    int

	onTick   func(seconds int)
	onExpire func()

	running   bool
	ticks     int
	startedAt time.Time
	stoppedAt time.Time
	timer     Timer
}

// NewCountdown returns a clock that expires after seconds ticks. onTick
// receives the remaining seconds.
func NewCountdown(sched Scheduler, seconds int, onTick func(remaining int), onExpire func()) *Clock {
	return &Clock{
		sched:    sched,
		mode:     Countdown,
		interval: TickInterval,
		total:    seconds,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// NewStopwatch returns a clock that never expires. onTick receives the
// elapsed seconds.
func NewStopwatch(sched Scheduler, onTick func(elapsed int)) *Clock {
	return &Clock{
		sched:    sched,
		mode:     Stopwatch,
		interval: TickInterval,
		onTick:   onTick,
	}
}

// Start begins ticking. Starting a running clock does nothing.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.startedAt = c.sched.Now()
	c.timer = c.sched.AfterFunc(c.interval, c.tick)
}

// Stop cancels the pending tick and freezes elapsed time.
func (c *Clock) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.stoppedAt = c.sched.Now()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Clock) tick() {
	c.timer = nil
	c.ticks++
	if c.onTick != nil {
		c.onTick(c.Seconds())
	}
	if c.mode == Countdown && c.ticks >= c.total {
		c.running = false
		c.stoppedAt = c.sched.Now()
		if c.onExpire != nil {
			c.onExpire()
		}
		return
	}
	c.timer = c.sched.AfterFunc(c.interval, c.tick)
}

// Seconds returns remaining seconds in countdown mode and whole elapsed
// seconds in stopwatch mode.
func (c *Clock) Seconds() int {
	if c.mode == Countdown {
		remaining := c.total - c.ticks
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return int(c.Elapsed() / time.Second)
}

// Elapsed returns the session time. Countdown clocks count whole ticks;
// stopwatches measure scheduler time between start and stop.
func (c *Clock) Elapsed() time.Duration {
	if c.mode == Countdown {
		return time.Duration(c.ticks) * c.interval
	}
	if c.startedAt.IsZero() {
		return 0
	}
	end := c.stoppedAt
	if c.running {
		end = c.sched.Now()
	}
	return end.Sub(c.startedAt)
}

// StartedAt returns the scheduler time of Start.
func (c *Clock) StartedAt() time.Time {
	return c.startedAt
}
