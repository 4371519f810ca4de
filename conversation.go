package groqqy

// ConversationManager is the append-only ordered log of conversation
// turns. It is the single ground truth passed to the Provider on every
// model call.
//
// The log never truncates: every call sends the entire conversation so
// far. Long multi-turn sessions will eventually exceed a model's
// context window; that is a documented scalability limitation of this
// design, not a bug. Callers needing bounded context must layer a
// windowing strategy on top.
//
// A ConversationManager is intended for a single session and a single
// caller. It is not safe for concurrent use.
type ConversationManager struct {
	messages []Message
}

// NewConversationManager creates an empty conversation log.
func NewConversationManager() *ConversationManager {
	return &ConversationManager{}
}

// AddUser appends a user message.
func (c *ConversationManager) AddUser(text string) {
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text})
}

// AddAssistant appends a plain assistant message.
func (c *ConversationManager) AddAssistant(text string) {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: text})
}

// AddAssistantToolCalls appends an assistant message that requests tool
// execution. Text may be empty.
//
// The chat-completion protocol requires that the tool-role messages
// covering every requested ID are appended before any further user or
// assistant message; [Agent] maintains that invariant.
func (c *ConversationManager) AddAssistantToolCalls(text string, calls []ToolCallRequest) {
	c.messages = append(c.messages, Message{
		Role:      RoleAssistant,
		Content:   text,
		ToolCalls: calls,
	})
}

// AddToolResult appends the result of one tool call, linked to its
// request by id.
func (c *ConversationManager) AddToolResult(toolCallID, result string) {
	c.messages = append(c.messages, Message{
		Role:       RoleTool,
		Content:    result,
		ToolCallID: toolCallID,
	})
}

// History returns the full ordered message log. The returned slice is
// a copy; appended messages themselves are never mutated.
func (c *ConversationManager) History() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *ConversationManager) Len() int {
	return len(c.messages)
}

// Reset clears the log. Used between independent sessions.
func (c *ConversationManager) Reset() {
	c.messages = nil
}
