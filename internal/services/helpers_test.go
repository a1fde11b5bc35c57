package services

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type generateFunc func(ctx context.Context, system, user string, temperature float32) (string, error)

// fakeClient is a GenerationClient driven by a function; it records calls.
type fakeClient struct {
	mu    sync.Mutex
	fn    generateFunc
	calls []string
}

func newFakeClient(fn generateFunc) *fakeClient {
	return &fakeClient{fn: fn}
}

func replyWith(reply string) *fakeClient {
	return newFakeClient(func(context.Context, string, string, float32) (string, error) {
		return reply, nil
	})
}

func failWith(err error) *fakeClient {
	return newFakeClient(func(context.Context, string, string, float32) (string, error) {
		return "", err
	})
}

func (c *fakeClient) Generate(ctx context.Context, system, user string, temperature float32, _ int32) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, user)
	c.mu.Unlock()
	return c.fn(ctx, system, user, temperature)
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}
