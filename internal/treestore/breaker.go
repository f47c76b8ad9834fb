package treestore

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker decorates a remote backend with a circuit breaker so a flapping
// store fails fast instead of stalling every request.
type Breaker struct {
	inner Store
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps st. Tripping requires five consecutive failures; the
// breaker half-opens after 30 seconds.
func WithBreaker(st Store, name string) *Breaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Breaker{inner: st, cb: cb}
}

func (b *Breaker) Get(ctx context.Context, path string) (Node, error) {
	res, err := b.cb.Execute(func() (any, error) { return b.inner.Get(ctx, path) })
	if err != nil {
		return nil, err
	}
	n, _ := res.(Node)
	return n, nil
}

func (b *Breaker) Query(ctx context.Context, path, field, value string) (map[string]Record, error) {
	res, err := b.cb.Execute(func() (any, error) { return b.inner.Query(ctx, path, field, value) })
	if err != nil {
		return nil, err
	}
	m, _ := res.(map[string]Record)
	return m, nil
}

func (b *Breaker) Push(ctx context.Context, path string, rec Record) (string, error) {
	res, err := b.cb.Execute(func() (any, error) { return b.inner.Push(ctx, path, rec) })
	if err != nil {
		return "", err
	}
	key, _ := res.(string)
	return key, nil
}

func (b *Breaker) Update(ctx context.Context, path string, fields Record) error {
	_, err := b.cb.Execute(func() (any, error) { return nil, b.inner.Update(ctx, path, fields) })
	return err
}

func (b *Breaker) Remove(ctx context.Context, path string) error {
	_, err := b.cb.Execute(func() (any, error) { return nil, b.inner.Remove(ctx, path) })
	return err
}

func (b *Breaker) Dump(ctx context.Context) (Node, error) {
	res, err := b.cb.Execute(func() (any, error) { return b.inner.Dump(ctx) })
	if err != nil {
		return nil, err
	}
	n, _ := res.(Node)
	return n, nil
}

func (b *Breaker) Ping(ctx context.Context) error {
	_, err := b.cb.Execute(func() (any, error) { return nil, b.inner.Ping(ctx) })
	return err
}

func (b *Breaker) Close() error { return b.inner.Close() }
