package dispatch

import (
	"errors"
	"testing"

	"github.com/devplanhq/plangate/internal/infra/llm"
)

func TestSelect_TotalOverTaskSet(t *testing.T) {
	t.Parallel()

	for _, task := range Tasks() {
		route, err := Select(task)
		if err != nil {
			t.Errorf("Select(%q) failed: %v", task, err)
			continue
		}
		if route.Provider == "" || route.Model == "" {
			t.Errorf("Select(%q) returned incomplete route: %+v", task, route)
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	t.Parallel()

	for _, task := range Tasks() {
		first, err1 := Select(task)
		second, err2 := Select(task)
		if err1 != nil || err2 != nil {
			t.Fatalf("Select(%q) failed: %v / %v", task, err1, err2)
		}
		if first != second {
			t.Errorf("Select(%q) not deterministic: %+v vs %+v", task, first, second)
		}
	}
}

func TestSelect_UnknownTask_Error(t *testing.T) {
	t.Parallel()

	_, err := Select(Task("nonexistent-task"))
	if !errors.Is(err, ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
}

func TestSelect_PolicyAssignments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		task     Task
		provider llm.Provider
		effort   string
	}{
		{TaskClarify, llm.ProviderAnthropic, llm.EffortHigh},
		{TaskBlueprint, llm.ProviderAnthropic, llm.EffortHigh},
		{TaskPRD, llm.ProviderOpenAI, ""},
		{TaskTasks, llm.ProviderOpenAI, ""},
		{TaskCategorize, llm.ProviderGemini, llm.EffortLow},
		{TaskSearch, llm.ProviderGemini, llm.EffortLow},
	}
	for _, tt := range tests {
		route, err := Select(tt.task)
		if err != nil {
			t.Fatalf("Select(%q) failed: %v", tt.task, err)
		}
		if route.Provider != tt.provider {
			t.Errorf("Select(%q): expected provider %s, got %s", tt.task, tt.provider, route.Provider)
		}
		if route.Params.ReasoningEffort != tt.effort {
			t.Errorf("Select(%q): expected effort %q, got %q", tt.task, tt.effort, route.Params.ReasoningEffort)
		}
	}
}
