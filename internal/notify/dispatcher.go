package notify

import (
	"context"
	"time"

	"github.com/maheshsta/corebank/internal/logging"
)

// Dispatcher wraps a Notifier with the fire-and-forget contract the transfer
// path relies on: Dispatch never blocks the caller beyond scheduling, never
// returns an error, and surfaces delivery failure only as a log record.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
}

func NewDispatcher(notifier Notifier, timeout time.Duration) *Dispatcher {
	return &Dispatcher{notifier: notifier, timeout: timeout}
}

func (d *Dispatcher) Dispatch(ctx context.Context, recipient, subject, body string) {
	log := logging.FromContext(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.notifier.Send(sendCtx, recipient, subject, body); err != nil {
			log.Error("notification delivery failed",
				"recipient", recipient,
				"subject", subject,
				"error", err,
			)
		}
	}()
}
