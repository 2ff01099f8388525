package poll

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
)

// ErrTimeout is returned when a job does not reach a terminal state before the deadline.
var ErrTimeout = errors.New("job did not reach a terminal state before the deadline")

var errPending = errors.New("job pending")

// Options bound a polling loop. A zero Timeout means the caller's context is the only bound.
type Options struct {
	Interval time.Duration
	Timeout  time.Duration
}

// CheckFunc inspects the job once. done=true ends the loop; a non-nil error
// aborts it immediately and is returned unchanged.
type CheckFunc func(ctx context.Context) (done bool, err error)

// Until calls check every opts.Interval until it reports done, fails,
// the deadline passes or ctx is cancelled. The first check runs immediately.
func Until(ctx context.Context, opts Options, check CheckFunc) error {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	pollCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(opts.Interval), pollCtx)
	err := backoff.Retry(func() error {
		done, err := check(pollCtx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !done {
			return errPending
		}
		return nil
	}, b)

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded) && pollCtx.Err() != nil,
		errors.Is(err, errPending) && pollCtx.Err() != nil:
		return errs.New(errs.KindTimeout, "poll", ErrTimeout)
	default:
		return err
	}
}
