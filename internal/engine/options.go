package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/verte-zerg/typetest/internal/clock"
	"github.com/verte-zerg/typetest/internal/generator"
	"github.com/verte-zerg/typetest/internal/wordlist"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	sched clock.Scheduler
	rnd   *rand.Rand
	pools wordlist.Pools
	table generator.Table
	hooks Hooks
	log   *zap.Logger
}

func defaultOptions() options {
	return options{
		pools: wordlist.Default(),
		table: generator.DefaultTable(),
		log:   zap.NewNop(),
	}
}

// WithScheduler sets the time source and timer factory. It is required: the
// scheduler must run its callbacks on the goroutine that delivers keys.
func WithScheduler(s clock.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithRand sets the random source used for text generation.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) { o.rnd = rnd }
}

// WithSeed seeds text generation. Zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed != 0 {
			o.rnd = rand.New(rand.NewSource(seed))
		}
	}
}

// WithPools replaces the default word and symbol pools.
func WithPools(p wordlist.Pools) Option {
	return func(o *options) { o.pools = p }
}

// WithTable replaces the default difficulty table.
func WithTable(t generator.Table) Option {
	return func(o *options) { o.table = t }
}

// WithHooks registers event callbacks.
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.log = l
	}
}
