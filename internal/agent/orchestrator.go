// README: Three-stage pipeline state machine (analyze, gather, synthesize).
package agent

import (
	"context"
)

// Orchestrator sequences the three pipeline stages and owns the AgentState
// for a conversation turn. Transitions are unconditional and sequential; all
// resilience lives inside the stage implementations, each of which is
// guaranteed not to fail.
type Orchestrator struct {
	extractor   *DetailExtractor
	gatherer    *Gatherer
	synthesizer *Synthesizer

	// onStep, when set, is called after every state transition. Used by
	// tests to observe step progression.
	onStep func(Step)
}

func NewOrchestrator(extractor *DetailExtractor, gatherer *Gatherer, synthesizer *Synthesizer) *Orchestrator {
	return &Orchestrator{
		extractor:   extractor,
		gatherer:    gatherer,
		synthesizer: synthesizer,
	}
}

// Run executes one conversation turn: extract details, gather supporting
// data, synthesize the itinerary. It always returns a terminal state with a
// non-empty FinalResponse; the caller owns persistence.
func (o *Orchestrator) Run(ctx context.Context, userMessage string) AgentState {
	state := NewAgentState(userMessage)
	o.observe(state.CurrentStep)

	details := o.extractor.Extract(ctx, userMessage)
	state = state.Apply(StateUpdate{
		TravelDetails: &details,
		CurrentStep:   StepGatheringData,
	})
	o.observe(state.CurrentStep)

	results := o.gatherer.Gather(ctx, state.TravelDetails)
	state = state.Apply(StateUpdate{
		ToolResults: &results,
		CurrentStep: StepCreatingItinerary,
	})
	o.observe(state.CurrentStep)

	response := o.synthesizer.Synthesize(ctx, userMessage, state.TravelDetails, state.ToolResults)
	state = state.Apply(StateUpdate{
		Messages:      []Message{{Role: RoleAssistant, Content: response}},
		FinalResponse: response,
		CurrentStep:   StepComplete,
	})
	o.observe(state.CurrentStep)

	return state
}

func (o *Orchestrator) observe(step Step) {
	if o.onStep != nil {
		o.onStep(step)
	}
}
