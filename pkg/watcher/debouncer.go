package watcher

import (
	"context"
	"time"

	"github.com/askeland/codegraph/pkg/logging"
)

// Debouncer batches rapid change events so editor save storms and
// branch switches trigger one re-analysis, not dozens. Events are held
// for a quiet period after the last change, with a max-wait cap so a
// continuous stream still flushes.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a debouncer over an event stream.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events until the context is cancelled.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// Output returns the debounced event stream.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func (d *Debouncer) run(ctx context.Context) {
	accumulated := make(map[ChangeType][]string)
	eventCount := 0

	quiet := time.NewTimer(0)
	if !quiet.Stop() {
		<-quiet.C
	}
	var maxWait *time.Timer
	maxWaitC := func() <-chan time.Time {
		if maxWait != nil {
			return maxWait.C
		}
		return nil
	}

	flush := func() {
		if eventCount == 0 {
			return
		}
		logging.Debug("flushing accumulated change events", "count", eventCount)

		// Layout changes first: they can invalidate the file set the
		// source changes refer to.
		for _, t := range []ChangeType{ChangeTypeLayout, ChangeTypeSource} {
			if paths := accumulated[t]; len(paths) > 0 {
				d.output <- ChangeEvent{Type: t, Paths: paths, Timestamp: time.Now()}
			}
		}

		accumulated = make(map[ChangeType][]string)
		eventCount = 0
		quiet.Stop()
		if maxWait != nil {
			maxWait.Stop()
			maxWait = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			accumulated[event.Type] = append(accumulated[event.Type], event.Paths...)
			eventCount++

			quiet.Reset(d.quietPeriod)
			if maxWait == nil {
				maxWait = time.NewTimer(d.maxWait)
			}

		case <-quiet.C:
			flush()

		case <-maxWaitC():
			flush()
		}
	}
}
