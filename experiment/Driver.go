package experiment

import (
	"context"
	"time"
)

// Command is an operation applied to a Session by a driver, between
// ticks, on the goroutine which owns the Session
type Command func(*Session)

// Drive advances s periodically, calling s.Tick(interval) once every
// interval, and sends a Snapshot after every tick and every command.
// Commands received on commands are applied to s between ticks.
//
// While Drive runs, its goroutine is the only one which may touch s.
// The returned channel is closed once ctx is done. An interval <= 0 is
// replaced by DefaultStepInterval.
func Drive(ctx context.Context, s *Session, interval time.Duration,
	commands <-chan Command) <-chan Snapshot {
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	snapshots := make(chan Snapshot, 1)

	go func() {
		defer close(snapshots)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			var snapshot Snapshot
			select {
			case <-ctx.Done():
				return

			case command, ok := <-commands:
				if !ok {
					// No more commands will arrive, keep ticking
					commands = nil
					continue
				}
				command(s)
				snapshot = s.Snapshot()

			case <-ticker.C:
				snapshot = s.Tick(interval)
			}

			select {
			case snapshots <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots
}
