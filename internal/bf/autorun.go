package bf

import (
	"context"
	"time"
)

const DefaultInterval = 100 * time.Millisecond

// AutoRun steps the interpreter once per interval until it halts, is paused
// from observe, or ctx is cancelled. Cancelling leaves the interpreter
// paused so a later call can continue from the same place.
func AutoRun(ctx context.Context, in *Interpreter, interval time.Duration, observe func(StepResult)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	in.Run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			in.Pause()
			return ctx.Err()
		case <-ticker.C:
		}

		if in.Status() != Running {
			return nil
		}

		res, err := in.Step()
		if observe != nil {
			observe(res)
		}
		if err != nil {
			return err
		}
		if res.Halt != NotHalted {
			return nil
		}
	}
}
