package dispatch

import (
	"errors"
	"fmt"

	"github.com/devplanhq/plangate/internal/infra/llm"
)

// ErrUnknownTask is returned by Select for a task outside the closed set.
// There is no default route.
var ErrUnknownTask = errors.New("unknown task")

// Route is the selection policy output: which provider and model service a
// task, and with which generation parameters.
type Route struct {
	Provider llm.Provider
	Model    string
	Params   llm.GenParams
}

// Model names pinned by the policy table.
const (
	ModelGemini    = "gemini-3-pro-preview"
	ModelAnthropic = "claude-sonnet-4-5"
	ModelOpenAI    = "gpt-4.1"
)

// routes is the static task→route policy table. Provider choice is a
// deliberate per-task decision, not best-effort routing:
//   - clarify and blueprint need open-ended multi-step reasoning, so they
//     go to Anthropic with high reasoning effort;
//   - prd and tasks need strict structured output, so they go to OpenAI;
//   - categorize and search are simple classification/simulation, so they
//     go to Gemini with low effort for latency and cost.
//
// Changing provider strengths means changing this table, not the algorithm.
var routes = map[Task]Route{
	TaskClarify: {
		Provider: llm.ProviderAnthropic,
		Model:    ModelAnthropic,
		Params:   llm.GenParams{Temperature: 1.0, ReasoningEffort: llm.EffortHigh},
	},
	TaskBlueprint: {
		Provider: llm.ProviderAnthropic,
		Model:    ModelAnthropic,
		Params:   llm.GenParams{Temperature: 1.0, ReasoningEffort: llm.EffortHigh},
	},
	TaskPRD: {
		Provider: llm.ProviderOpenAI,
		Model:    ModelOpenAI,
		Params:   llm.GenParams{Temperature: 1.0},
	},
	TaskTasks: {
		Provider: llm.ProviderOpenAI,
		Model:    ModelOpenAI,
		Params:   llm.GenParams{Temperature: 1.0},
	},
	TaskCategorize: {
		Provider: llm.ProviderGemini,
		Model:    ModelGemini,
		Params:   llm.GenParams{Temperature: 1.0, ReasoningEffort: llm.EffortLow},
	},
	TaskSearch: {
		Provider: llm.ProviderGemini,
		Model:    ModelGemini,
		Params:   llm.GenParams{Temperature: 1.0, ReasoningEffort: llm.EffortLow},
	},
}

// Select resolves a task to its route. Pure and deterministic: same task,
// same route, no I/O. Total over the closed task set; anything else is
// ErrUnknownTask.
func Select(task Task) (Route, error) {
	route, ok := routes[task]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}
	return route, nil
}
