package groqqy

import "context"

// Bot is the thin session facade over one [Agent]. It exposes the
// chat/reset surface the CLI uses, plus per-turn cost reporting.
type Bot struct {
	agent *Agent
}

// NewBot creates a bot over a fresh agent.
func NewBot(provider Provider, registry *ToolRegistry, opts ...AgentOption) *Bot {
	return &Bot{agent: NewAgent(provider, registry, opts...)}
}

// Chat sends one user message through the agent loop and returns the
// final response together with the cost of this turn.
func (b *Bot) Chat(ctx context.Context, message string) (string, float64, error) {
	before := b.agent.TotalCost()
	result, err := b.agent.Run(ctx, message)
	if err != nil {
		return "", b.agent.TotalCost() - before, err
	}
	return result.Response, result.TotalCost - before, nil
}

// Reset clears the conversation and accumulated cost.
func (b *Bot) Reset() {
	b.agent.Reset()
}

// TotalCost returns the session's accumulated cost.
func (b *Bot) TotalCost() float64 {
	return b.agent.TotalCost()
}

// History returns the session's conversation log.
func (b *Bot) History() []Message {
	return b.agent.History()
}
