// Package dispatch orchestrates a task request: resolve the task to a
// provider route via the selection policy, invoke the provider registry
// under a timeout, and return a normalized result or a classified failure.
// Provider failures are always reported as values, never panics.
package dispatch

// Task names a unit of work a caller can request. The set is closed and
// known at build time.
type Task string

const (
	TaskClarify    Task = "clarify"
	TaskPRD        Task = "prd"
	TaskBlueprint  Task = "blueprint"
	TaskTasks      Task = "tasks"
	TaskCategorize Task = "categorize"
	TaskSearch     Task = "search"
)

// Tasks returns the closed task set in stable order.
func Tasks() []Task {
	return []Task{TaskClarify, TaskPRD, TaskBlueprint, TaskTasks, TaskCategorize, TaskSearch}
}
