// Package speech abstracts the optional speech capture capability used on
// the voice step of the play screen.
package speech

import "context"

// Handlers receive the outcome of one capture. OnResult may be called zero
// or more times; OnEnd is called exactly once, last. Capabilities may call
// them from another goroutine.
type Handlers struct {
	OnResult func(transcript string)
	OnEnd    func()
}

// Request describes what the child was asked to say.
type Request struct {
	Word     string
	Language string
}

// Capability starts a capture. Start is fire-and-forget.
type Capability interface {
	Available() bool
	Start(ctx context.Context, req Request, h Handlers)
}

// Unavailable is the capability of an environment that cannot capture
// speech: Start ends immediately, on the calling goroutine.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Start(_ context.Context, _ Request, h Handlers) {
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

// Await runs one capture and blocks until it ends. It returns the last
// transcript reported, if any.
func Await(ctx context.Context, c Capability, req Request) string {
	results := make(chan string, 1)
	done := make(chan struct{})
	var transcript string

	c.Start(ctx, req, Handlers{
		OnResult: func(t string) {
			select {
			case <-results:
			default:
			}
			results <- t
		},
		OnEnd: func() { close(done) },
	})

	select {
	case <-done:
	case <-ctx.Done():
	}
	select {
	case transcript = <-results:
	default:
	}
	return transcript
}
