package ai

import "context"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of a conversation in provider-neutral form.
type Message struct {
	Role string
	Text string
}

// Provider generates a reply for a new user message given the ordered
// transcript that precedes it. The call is the sole network suspension
// point of a chat request; implementations own their timeouts.
type Provider interface {
	Generate(ctx context.Context, transcript []Message, message string) (string, error)
}
