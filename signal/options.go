package signal

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log"

	"github.com/arloliu/sigtab/internal/options"
)

type config struct {
	mem           memory.Allocator
	logger        log.Logger
	batchSizeHint uint64
	closeSource   bool
}

// Option configures how a signal table is opened.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		mem:    memory.DefaultAllocator,
		logger: log.NewNopLogger(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithAllocator sets the allocator used for record batches and materialized arrays.
//
// Default: memory.DefaultAllocator.
func WithAllocator(mem memory.Allocator) Option {
	return options.New(func(c *config) error {
		if mem == nil {
			return errors.New("allocator must not be nil")
		}
		c.mem = mem

		return nil
	})
}

// WithLogger sets the logger. Only open-time events are logged.
//
// Default: a no-op logger.
func WithLogger(logger log.Logger) Option {
	return options.New(func(c *config) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}

// WithBatchSizeHint seeds the batch size hint used to map rows to batches.
//
// A wrong hint only costs a binary search; it never changes results.
// Default: the row count of the first batch, learned on the first lookup.
func WithBatchSizeHint(rows uint64) Option {
	return options.NoError(func(c *config) {
		c.batchSizeHint = rows
	})
}

// WithCloseSource makes Close also close the source when it implements io.Closer.
//
// Default: false.
func WithCloseSource(closeSource bool) Option {
	return options.NoError(func(c *config) {
		c.closeSource = closeSource
	})
}
