// Package loop is a headless fixed-interval scheduler for frame callbacks.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const DefaultInterval = 50 * time.Millisecond

var ErrInvalidLoop = errors.New("loop: invalid configuration")

// Loop calls a tick function with frame indices 0, 1, 2, ... at a fixed
// wall-clock interval. With Frames > 0 the index wraps back to 0 after
// Frames-1, so a frame source sees the restart. Ticks never overlap; a slow
// tick delays the next one rather than queueing it.
type Loop struct {
	Interval time.Duration
	Frames   int // loop length; 0 never wraps
	Limit    int // total ticks before Run returns; 0 runs until canceled
}

func (l Loop) Validate() error {
	if l.Interval <= 0 {
		return fmt.Errorf("%w: interval %v", ErrInvalidLoop, l.Interval)
	}
	if l.Frames < 0 || l.Limit < 0 {
		return fmt.Errorf("%w: frames=%d limit=%d", ErrInvalidLoop, l.Frames, l.Limit)
	}
	return nil
}

// Next returns the frame index that follows frame.
func (l Loop) Next(frame int) int {
	frame++
	if l.Frames > 0 && frame >= l.Frames {
		return 0
	}
	return frame
}

// Run ticks until ctx is done, the limit is reached, or tick returns an
// error. The first tick (frame 0) runs immediately. A tick error stops the
// loop and is returned as is.
func (l Loop) Run(ctx context.Context, tick func(frame int) error) error {
	if err := l.Validate(); err != nil {
		return err
	}

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	frame := 0
	for n := 0; l.Limit == 0 || n < l.Limit; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
		// select is random when both channels are ready
		if err := ctx.Err(); err != nil {
			slog.Debug("loop: context done, stopping", "ticks", n)
			return err
		}

		if err := tick(frame); err != nil {
			return err
		}
		frame = l.Next(frame)
	}
	return nil
}
