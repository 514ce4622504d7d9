package Apis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"
)

// Subscription is the long-lived /stream subscription. It is opened once and
// lives until its context ends; lost connections are re-established with
// exponential backoff that never gives up, including streams the backend
// closes cleanly.
type Subscription struct {
	client       *sse.Client
	retry        *backoff.ExponentialBackOff
	redial       *backoff.ExponentialBackOff
	logger       *slog.Logger
	onConnect    func()
	onDisconnect func()
}

func newBackOff(maxBackoff time.Duration) *backoff.ExponentialBackOff {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = min(500*time.Millisecond, maxBackoff)
	strategy.MaxInterval = maxBackoff
	strategy.MaxElapsedTime = 0
	strategy.Reset()
	return strategy
}

// Subscribe prepares a subscription to the backend stream. maxBackoff caps
// the delay between reconnect attempts.
func (c *Client) Subscribe(maxBackoff time.Duration) *Subscription {
	client := sse.NewClient(c.StreamURL())
	client.Connection = &http.Client{}

	s := &Subscription{
		client: client,
		retry:  newBackOff(maxBackoff),
		redial: newBackOff(maxBackoff),
		logger: c.logger,
	}
	client.ReconnectNotify = func(err error, next time.Duration) {
		s.logger.Warn("stream lost, reconnecting", "err", err, "retry_in", next)
	}
	// A connection counts as up once the backend accepts it, not on its first event.
	client.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("could not connect to stream: %s", resp.Status)
		}
		s.connected()
		return nil
	}
	client.OnDisconnect(func(*sse.Client) { s.disconnected() })
	return s
}

// OnConnect registers fn to run whenever the stream (re)connects.
func (s *Subscription) OnConnect(fn func()) {
	s.onConnect = fn
}

// OnDisconnect registers fn to run whenever the stream drops.
func (s *Subscription) OnDisconnect(fn func()) {
	s.onDisconnect = fn
}

func (s *Subscription) connected() {
	if s.onConnect != nil {
		s.onConnect()
	}
}

func (s *Subscription) disconnected() {
	if s.onDisconnect != nil {
		s.onDisconnect()
	}
}

// Run blocks, handing each message payload to handle in arrival order. It
// returns nil once ctx ends.
func (s *Subscription) Run(ctx context.Context, handle func(data []byte)) error {
	s.client.ReconnectStrategy = backoff.WithContext(s.retry, ctx)
	s.logger.Info("subscribing to violation stream", "url", s.client.URL)

	for {
		delivered := false
		err := s.client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			delivered = true
			handle(msg.Data)
		})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		// The backend ended the response; the library treats that as done.
		s.disconnected()
		if delivered {
			s.redial.Reset()
		}
		next := s.redial.NextBackOff()
		s.logger.Warn("stream closed by backend, reconnecting", "retry_in", next)

		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
