// Package engine runs a typing session: it owns text composition, key
// matching, the session clock and metrics, and exposes snapshots and events to
// a rendering host.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/typetest/internal/clock"
	"github.com/verte-zerg/typetest/internal/composer"
	"github.com/verte-zerg/typetest/internal/generator"
	"github.com/verte-zerg/typetest/internal/matcher"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
)

// ErrInvalidConfig is returned when a session config is rejected.
var ErrInvalidConfig = errors.New("invalid session config")

// ErrNoScheduler is returned by New when no scheduler option was given.
var ErrNoScheduler = errors.New("no scheduler configured")

// Hooks are the notifications emitted to a rendering host. Nil hooks are
// skipped. Slices passed to hooks are copies.
type Hooks struct {
	OnTextChanged func(lines [][]model.CharCell)
	OnCellUpdated func(index int, state model.CellState)
	OnTick        func(seconds int)
	OnFinish      func(result model.Result)
}

// Snapshot is a read-only view of the session for rendering. Lines[0] is the
// line the caret addresses.
type Snapshot struct {
	Config         model.Config
	Status         model.Status
	Lines          [][]model.CharCell
	Caret          int
	Current        int
	CorrectCount   int
	IncorrectCount int
	CompletedWords int
	Seconds        int
}

// Controller owns one session at a time. It is not safe for concurrent use:
// hosts deliver key events and scheduler callbacks from a single goroutine.
type Controller struct {
	sched clock.Scheduler
	gen   *generator.Generator
	hooks Hooks
	log   *zap.Logger

	cfg     model.Config
	window  *composer.Window
	segment []model.CharCell
	matcher *matcher.Matcher
	clock   *clock.Clock
	tracker *stats.Tracker
	result  *model.Result
}

// New validates cfg, composes the first text and returns an idle controller.
func New(cfg model.Config, opts ...Option) (*Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		return nil, ErrNoScheduler
	}
	if err := o.table.Validate(); err != nil {
		return nil, err
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &Controller{
		sched: o.sched,
		gen:   generator.New(o.rnd, o.pools, o.table),
		hooks: o.hooks,
		log:   o.log,
	}
	if err := c.Reset(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every config field holds a known value.
func Validate(cfg model.Config) error {
	switch cfg.Mode {
	case model.ModeTime, model.ModeWords:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
	switch cfg.TextType {
	case model.TextWords, model.TextPunctuation, model.TextNumbers, model.TextMixed:
	default:
		return fmt.Errorf("%w: unknown text type %q", ErrInvalidConfig, cfg.TextType)
	}
	switch cfg.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, cfg.Difficulty)
	}
	switch cfg.Backspace {
	case model.BackspaceUndo, model.BackspaceVisual:
	default:
		return fmt.Errorf("%w: unknown backspace policy %q", ErrInvalidConfig, cfg.Backspace)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be > 0", ErrInvalidConfig)
	}
	if cfg.WordCount <= 0 {
		return fmt.Errorf("%w: word count must be > 0", ErrInvalidConfig)
	}
	if cfg.LineTokens <= 0 {
		return fmt.Errorf("%w: line tokens must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Reset discards the current session and prepares an idle one for cfg. On
// error the previous session is left untouched.
func (c *Controller) Reset(cfg model.Config) error {
	if err := Validate(cfg); err != nil {
		c.log.Warn("rejected session config", zap.Error(err))
		return err
	}
	comp := composer.New(c.gen, cfg)
	var (
		window  *composer.Window
		segment []model.CharCell
		err     error
	)
	if cfg.Mode == model.ModeTime {
		window, err = comp.NewWindow(cfg.LineTokens)
	} else {
		segment, err = comp.ComposeWordSegment(cfg.WordCount)
	}
	if err != nil {
		c.log.Error("failed to compose text", zap.Error(err))
		return fmt.Errorf("failed to compose text: %w", err)
	}

	if c.clock != nil {
		c.clock.Stop()
	}
	c.cfg = cfg
	c.window = window
	c.segment = segment
	c.matcher = matcher.New(cfg.Backspace)
	c.matcher.Load(c.activeLine())
	c.tracker = &stats.Tracker{}
	c.result = nil
	if cfg.Mode == model.ModeTime {
		c.clock = clock.NewCountdown(c.sched, cfg.Duration, c.onTick, c.finishOnExpire)
	} else {
		c.clock = clock.NewStopwatch(c.sched, c.onTick)
	}
	c.log.Debug("session reset",
		zap.String("mode", string(cfg.Mode)),
		zap.String("text", string(cfg.TextType)),
		zap.String("difficulty", string(cfg.Difficulty)),
	)
	c.emitText()
	return nil
}

// HandleKey applies one key event. It returns the result when the event
// finished the session.
func (c *Controller) HandleKey(key model.Key) (model.Result, bool) {
	if c.cfg.Mode == model.ModeTime && key.Kind == model.KeyRune && c.matcher.Status() == model.StatusRunning {
		c.ensureActiveLine()
	}
	step, ok := c.matcher.Apply(key)
	if !ok {
		return model.Result{}, false
	}
	if step.Started {
		c.clock.Start()
		c.log.Debug("session started")
	}
	if c.hooks.OnCellUpdated != nil {
		c.hooks.OnCellUpdated(step.Index, step.State)
	}
	if !step.Exhausted {
		return model.Result{}, false
	}
	if c.cfg.Mode == model.ModeWords {
		return c.finish(), true
	}
	c.slide()
	return model.Result{}, false
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	correct, incorrect := c.matcher.Counts()
	return Snapshot{
		Config:         c.cfg,
		Status:         c.matcher.Status(),
		Lines:          c.lines(),
		Caret:          c.matcher.Caret(),
		Current:        c.matcher.Current(),
		CorrectCount:   correct,
		IncorrectCount: incorrect,
		CompletedWords: c.matcher.CompletedWords(),
		Seconds:        c.clock.Seconds(),
	}
}

// Result returns the final result once the session has finished.
func (c *Controller) Result() (model.Result, bool) {
	if c.result == nil {
		return model.Result{}, false
	}
	r := *c.result
	r.WPMSamples = append([]float64(nil), c.result.WPMSamples...)
	return r, true
}

// Config returns the active session config.
func (c *Controller) Config() model.Config {
	return c.cfg
}

func (c *Controller) onTick(seconds int) {
	correct, incorrect := c.matcher.Counts()
	c.tracker.Sample(correct, incorrect, c.clock.Elapsed().Seconds())
	if c.hooks.OnTick != nil {
		c.hooks.OnTick(seconds)
	}
}

func (c *Controller) finishOnExpire() {
	c.finish()
}

func (c *Controller) finish() model.Result {
	if !c.matcher.Finish() {
		return model.Result{}
	}
	c.clock.Stop()
	correct, incorrect := c.matcher.Counts()
	r := stats.Compute(correct, incorrect, c.clock.Elapsed().Seconds(), c.tracker.Samples())
	r.Mode = c.cfg.Mode
	r.TextType = c.cfg.TextType
	r.Difficulty = c.cfg.Difficulty
	r.StartedAt = c.clock.StartedAt()
	r.EndedAt = c.sched.Now()
	c.result = &r
	c.log.Info("session finished",
		zap.String("mode", string(r.Mode)),
		zap.Int("wpm", r.WPM),
		zap.Int("accuracy", r.Accuracy),
		zap.Int("consistency", r.Consistency),
	)
	if c.hooks.OnFinish != nil {
		c.hooks.OnFinish(r)
	}
	result, _ := c.Result()
	return result
}

// slide replaces the completed active line. A failed slide leaves the caret
// at the end of the line; the next printable key retries.
func (c *Controller) slide() {
	if err := c.window.Slide(); err != nil {
		c.log.Error("failed to replenish text", zap.Error(err))
		return
	}
	c.matcher.Load(c.window.Active())
	c.emitText()
}

func (c *Controller) ensureActiveLine() {
	if c.matcher.Caret() < len(c.window.Active()) {
		return
	}
	c.slide()
}

func (c *Controller) activeLine() []model.CharCell {
	if c.window != nil {
		return c.window.Active()
	}
	return c.segment
}

func (c *Controller) lines() [][]model.CharCell {
	var src [][]model.CharCell
	if c.window != nil {
		src = c.window.Lines()
	} else {
		src = [][]model.CharCell{c.segment}
	}
	out := make([][]model.CharCell, len(src))
	for i, line := range src {
		out[i] = append([]model.CharCell(nil), line...)
	}
	return out
}

func (c *Controller) emitText() {
	if c.hooks.OnTextChanged != nil {
		c.hooks.OnTextChanged(c.lines())
	}
}
