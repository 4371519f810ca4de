package groqqy

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TerminationReason says how a run ended.
type TerminationReason string

const (
	// TerminationCompleted means the model produced a final answer
	// with no further tool requests.
	TerminationCompleted TerminationReason = "completed"

	// TerminationMaxIterations means the iteration budget ran out
	// before the model stopped requesting tools. This distinguishes
	// "gave up" from "finished"; it is a reportable state, not an
	// error.
	TerminationMaxIterations TerminationReason = "max_iterations"
)

// maxIterationsResponse is returned when the iteration budget runs out
// before the model produces usable final text.
const maxIterationsResponse = "[Agent reached max iterations - task may be incomplete]"

// DefaultMaxIterations bounds a run when no explicit limit is set.
const DefaultMaxIterations = 10

// AgentResult is the terminal value of one [Agent.Run] invocation.
type AgentResult struct {
	// Response is the final answer text.
	Response string

	// Iterations is the number of model calls made.
	Iterations int

	// TotalCost is the accumulated cost across the whole run so far,
	// including earlier runs on the same un-reset agent.
	TotalCost float64

	// ToolCallsMade counts the tool calls executed across the run.
	ToolCallsMade int

	// Reason says whether the run completed or exhausted its budget.
	Reason TerminationReason
}

// Agent drives the THINK→ACT→OBSERVE loop: call the model with the
// full conversation and tool schemas, execute any requested tool
// calls, feed the results back, and repeat until the model answers
// without tool requests or the iteration budget runs out.
//
// An Agent owns its conversation and cost tracker and serves a single
// session with a single caller. Running two Runs concurrently against
// the same Agent interleaves conversation appends non-deterministically
// and is unsupported; independent sessions need independent Agents.
// Sharing one ToolRegistry across agents is fine as long as it is not
// mutated during a run.
type Agent struct {
	provider      Provider
	registry      *ToolRegistry
	maxIterations int
	log           *zap.Logger

	conversation *ConversationManager
	executor     *ToolExecutor
	tracker      *CostTracker
}

// AgentOption configures an Agent at construction.
type AgentOption func(*Agent)

// WithMaxIterations overrides [DefaultMaxIterations]. Values below 1
// are ignored.
func WithMaxIterations(n int) AgentOption {
	return func(a *Agent) {
		if n >= 1 {
			a.maxIterations = n
		}
	}
}

// WithLogger sets the logger used by the agent and its tool executor.
// The default is a no-op logger, keeping the core silent and testable
// without any environment setup.
func WithLogger(log *zap.Logger) AgentOption {
	return func(a *Agent) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAgent creates an agent over the given provider and tool registry.
// Pass an empty registry to run without tools.
func NewAgent(provider Provider, registry *ToolRegistry, opts ...AgentOption) *Agent {
	a := &Agent{
		provider:      provider,
		registry:      registry,
		maxIterations: DefaultMaxIterations,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.conversation = NewConversationManager()
	a.executor = NewToolExecutor(registry, a.log)
	a.tracker = NewCostTracker()
	return a
}

// Run appends prompt as a user message and drives the loop to
// completion or exhaustion.
//
// Failure semantics are asymmetric on purpose. A failure inside a
// single tool's execution is expected, absorbed by the executor, and
// surfaced to the model as an error-text result, so the loop stays
// alive. A provider failure means the core service is unavailable and
// there is nothing the agent can usefully do; it propagates out of Run
// without retry.
func (a *Agent) Run(ctx context.Context, prompt string) (*AgentResult, error) {
	a.conversation.AddUser(prompt)
	schemas := a.registry.Schemas()
	iteration := 0
	toolCallsMade := 0

	a.log.Debug("agent run started",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("max_iterations", a.maxIterations))

	for iteration < a.maxIterations {
		iteration++
		a.log.Debug("agent iteration",
			zap.Int("iteration", iteration),
			zap.Int("max_iterations", a.maxIterations))

		// THINK
		resp, err := a.provider.Chat(ctx, a.conversation.History(), schemas)
		if err != nil {
			return nil, fmt.Errorf("model call (iteration %d): %w", iteration, err)
		}
		a.tracker.Add(a.provider.CostOf(resp.Usage), map[string]any{
			"iteration": iteration,
		})

		// No tool requests: this is the final answer, even when the
		// text is empty.
		if len(resp.ToolCalls) == 0 {
			a.conversation.AddAssistant(resp.Text)
			a.log.Info("agent run completed",
				zap.Int("iterations", iteration),
				zap.Int("tool_calls_made", toolCallsMade),
				zap.Float64("total_cost", a.tracker.Total()))
			return &AgentResult{
				Response:      resp.Text,
				Iterations:    iteration,
				TotalCost:     a.tracker.Total(),
				ToolCallsMade: toolCallsMade,
				Reason:        TerminationCompleted,
			}, nil
		}

		// ACT + OBSERVE: run each requested call in the order the
		// model returned it and append every result before the next
		// model call, so the history stays well-formed.
		a.conversation.AddAssistantToolCalls(resp.Text, resp.ToolCalls)
		toolCallsMade += len(resp.ToolCalls)
		a.log.Info("executing tools",
			zap.Int("iteration", iteration),
			zap.Int("count", len(resp.ToolCalls)))
		for _, result := range a.executor.ExecuteAll(ctx, resp.ToolCalls) {
			a.conversation.AddToolResult(result.ID, result.Text)
		}
	}

	a.log.Warn("max iterations reached",
		zap.Int("max_iterations", a.maxIterations),
		zap.Int("tool_calls_made", toolCallsMade))

	return &AgentResult{
		Response:      maxIterationsResponse,
		Iterations:    iteration,
		TotalCost:     a.tracker.Total(),
		ToolCallsMade: toolCallsMade,
		Reason:        TerminationMaxIterations,
	}, nil
}

// Reset clears the conversation and cost tracker, returning the agent
// to its initial state for a fresh session.
func (a *Agent) Reset() {
	a.conversation.Reset()
	a.tracker.Reset()
	a.log.Debug("agent reset")
}

// History returns the conversation log so far, for export or
// debugging. The returned slice is a copy.
func (a *Agent) History() []Message {
	return a.conversation.History()
}

// TotalCost returns the accumulated cost since construction or the
// last Reset.
func (a *Agent) TotalCost() float64 {
	return a.tracker.Total()
}

// CostEntries returns the per-call cost records.
func (a *Agent) CostEntries() []CostEntry {
	return a.tracker.Entries()
}
