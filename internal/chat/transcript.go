package chat

import (
	"fmt"

	"github.com/personachat/server/internal/ai"
	"github.com/personachat/server/internal/persona"
)

// PrimingInstruction is the synthetic first user turn that locks the model
// into a persona before any real conversation is replayed.
func PrimingInstruction(p persona.Persona) string {
	return fmt.Sprintf("System Instruction: From now on, you MUST act as %s. %s", p.DisplayName, p.SystemPrompt)
}

// PrimingAck is the fixed synthetic model turn acknowledging the persona.
func PrimingAck(p persona.Persona) string {
	return "Understood. I am now acting as " + p.DisplayName + "."
}

// BuildTranscript assembles the ordered message sequence sent ahead of a new
// user message: the priming pair followed by the client-supplied history,
// unchanged and in its original order. The history is deliberately not
// validated for role alternation or deduplicated; it is client-owned state
// and the transcript is rebuilt from scratch on every request.
func BuildTranscript(p persona.Persona, history []ai.Message) []ai.Message {
	transcript := make([]ai.Message, 0, len(history)+2)
	transcript = append(transcript,
		ai.Message{Role: ai.RoleUser, Text: PrimingInstruction(p)},
		ai.Message{Role: ai.RoleModel, Text: PrimingAck(p)},
	)
	return append(transcript, history...)
}
