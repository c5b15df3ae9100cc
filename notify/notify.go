package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bobinette/bookshelf/log"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Async delivers messages in the background. Notify never blocks on the
// delivery and never fails: delivery errors are logged.
type Async struct {
	notifier Notifier
	logger   log.Logger
	timeout  time.Duration

	wg sync.WaitGroup

	// done is called after each delivery, for tests.
	done func(error)
}

func NewAsync(notifier Notifier, logger log.Logger, timeout time.Duration) *Async {
	return &Async{
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
	}
}

func (a *Async) Notify(ctx context.Context, msg Message) error {
	a.wg.Add(1)
	go func(ctx context.Context) {
		defer a.wg.Done()

		if a.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		err := a.notifier.Notify(ctx, msg)
		if err != nil {
			a.logger.Errorf("could not send %q to %s: %v", msg.Subject, strings.Join(msg.To, ", "), err)
		} else {
			a.logger.Printf("sent %q to %s", msg.Subject, strings.Join(msg.To, ", "))
		}

		if a.done != nil {
			a.done(err)
		}
	}(context.WithoutCancel(ctx)) // the delivery outlives the caller's request

	return nil
}

// Wait blocks until the pending deliveries are over.
func (a *Async) Wait() {
	a.wg.Wait()
}

// Log only logs the messages. It stands in for a mail server in development.
type Log struct {
	Logger log.Logger
}

func (n Log) Notify(ctx context.Context, msg Message) error {
	n.Logger.WithField("to", strings.Join(msg.To, ", ")).Printf("%s\n%s", msg.Subject, msg.Body)
	return nil
}
