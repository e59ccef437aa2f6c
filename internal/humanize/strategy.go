package humanize

import "context"

// Request is a single rewrite request.
type Request struct {
	Text    string
	Options Options
}

// Output is a successful rewrite and the strategy that produced it.
type Output struct {
	HumanizedText string `json:"humanizedText"`
	Strategy      string `json:"strategy"`
}

// Humanizer rewrites text. Both the in-process Adapter and RemoteClient satisfy it.
type Humanizer interface {
	Humanize(ctx context.Context, req Request) (Output, error)
}

// Strategy is one link in the rewrite chain. Returning a non-fatal error lets the
// chain fall through to the next strategy.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, text string, opts Options) (string, error)
}
