package notify

import (
	"context"
	"errors"
	"net/smtp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf/log"
)

type blockingNotifier struct {
	release chan struct{}
	err     error
}

func (n *blockingNotifier) Notify(ctx context.Context, msg Message) error {
	<-n.release
	return n.err
}

func TestAsync_NeverBlocksNorFails(t *testing.T) {
	n := &blockingNotifier{release: make(chan struct{}), err: errors.New("smtp down")}
	async := NewAsync(n, log.Discard(), time.Second)

	delivered := make(chan error, 1)
	async.done = func(err error) { delivered <- err }

	ctx, cancel := context.WithCancel(context.Background())
	err := async.Notify(ctx, Message{To: []string{"pizza@bookshelf.io"}, Subject: "Password Reset Request"})
	assert.NoError(t, err, "async notify should not fail")
	cancel()

	close(n.release)
	select {
	case err := <-delivered:
		assert.EqualError(t, err, "smtp down", "the delivery error should only be logged")
	case <-time.After(time.Second):
		t.Fatal("message was never delivered")
	}
}

func TestSMTP_Notify(t *testing.T) {
	n := NewSMTP("smtp.bookshelf.io", 587, "noreply@bookshelf.io", "secret", "")

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := n.Notify(context.Background(), Message{
		To:      []string{"pizza@bookshelf.io"},
		Subject: "Password Reset Request",
		Body:    "To reset your password, use the token below.",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.bookshelf.io:587", gotAddr)
	assert.Equal(t, []string{"pizza@bookshelf.io"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Password Reset Request\r\n")
	assert.Contains(t, gotMsg, "From: \"Bookshelf\" <noreply@bookshelf.io>\r\n")
	assert.Contains(t, gotMsg, "\r\n\r\nTo reset your password, use the token below.")
}

func TestSMTP_Notify_NoRecipient(t *testing.T) {
	n := NewSMTP("smtp.bookshelf.io", 587, "noreply@bookshelf.io", "secret", "")
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("nothing should be sent")
		return nil
	}

	assert.Error(t, n.Notify(context.Background(), Message{Subject: "Hello"}))
}

type countingNotifier struct {
	count atomic.Int32
}

func (n *countingNotifier) Notify(ctx context.Context, msg Message) error {
	time.Sleep(10 * time.Millisecond)
	n.count.Add(1)
	return nil
}

func TestAsync_Wait(t *testing.T) {
	n := &countingNotifier{}
	async := NewAsync(n, log.Discard(), 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, async.Notify(context.Background(), Message{To: []string{"pizza@bookshelf.io"}}))
	}

	async.Wait()
	assert.Equal(t, int32(3), n.count.Load(), "every message should be delivered after wait")
}
