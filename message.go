package groqqy

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCallRequest is a model-issued request to invoke a named tool.
//
// Arguments holds the serialized JSON exactly as the model emitted it.
// Parsing is deferred to [ToolExecutor] so that malformed call syntax
// becomes an error-text result the model can see and correct, instead
// of an error that interrupts the agent loop.
type ToolCallRequest struct {
	// ID is an opaque identifier, unique within the response that
	// produced it. Tool results are matched back to requests by ID,
	// never by position.
	ID string

	// Name is the tool the model wants to invoke.
	Name string

	// Arguments is the raw JSON object of named arguments.
	Arguments string
}

// Message is a single turn in a conversation. Messages are immutable
// once appended to a [ConversationManager].
type Message struct {
	// Role is who produced this turn.
	Role Role

	// Content is the turn's text. May be empty on assistant messages
	// that only request tool calls.
	Content string

	// ToolCalls is set only on assistant messages that request tool
	// execution, in the order the model returned them.
	ToolCalls []ToolCallRequest

	// ToolCallID is set only on tool-role messages. It references the
	// ToolCallRequest.ID this message is the result of.
	ToolCallID string
}
