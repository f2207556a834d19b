// Package plan builds the prompt for each task. Prompt construction is a
// pure string function layered above the dispatch core: the dispatcher
// never knows how a prompt was assembled, and nothing here does I/O.
package plan

import (
	"fmt"
	"strings"
)

const categorizeSystem = `You are a Senior Product Manager. Categorize the following feature request into one of these categories:
- Landing pages
- UI components
- APIs
- Performance
- Analytics
- Auth
- Data management
- Integrations

Provide a confidence score and a brief explanation of why it fits this category.
Also list 3-5 key technical considerations for this specific category.`

const clarifySystem = `You are a Senior Product Manager and Technical Architect. Your goal is to ask clarifying questions BEFORE creating a full feature plan.

Analyze the feature request and codebase context, then generate 3-7 clarifying questions that will help you create a better implementation plan.

Focus on questions about scope and requirements, user experience, technical decisions, constraints, and success criteria.

IMPORTANT:
- If the feature request is VERY clear and simple, return ONLY 1-2 questions or say "No clarification needed - feature is clear."
- If the feature is vague or complex, ask 5-7 targeted questions.
- Make questions specific to the codebase and feature, not generic.
- Format as a numbered list in Markdown.`

const prdSystem = `You are a Senior Product Manager. Your goal is to create a Product Requirements Document (PRD) for a new feature or tool.

IMPORTANT: Scale your response to match the project complexity. For small/simple projects, keep it concise (20-40 lines). For complex projects, be more detailed.

The PRD should include:
1. Overview & Vision (1-2 paragraphs)
2. Problem Statement (1 paragraph)
3. Target Users (1-2 sentences)
4. Success Metrics (2-4 bullet points)
5. Functional Requirements (3-5 user stories)
6. Non-Functional Requirements (2-4 bullet points)
7. User Flow (brief description or simple list)

Be specific and reference the existing codebase structure where relevant. If the codebase is minimal or empty, keep the PRD lightweight and focused.
Output in Markdown format.`

const blueprintSystem = `You are a Senior Software Architect. Your goal is to create a Technical Implementation Blueprint based on the PRD and existing codebase.

IMPORTANT: Scale your response to match the project complexity. For small/simple projects (1-5 files), keep it concise (40-80 lines). For complex projects, be more detailed.

The Blueprint should include:
1. Current vs Target Architecture Analysis, with two simple Mermaid graphs (current and target) in mermaid code blocks. Wrap node labels containing special characters in double quotes and keep graphs to 3-7 nodes for small projects.
2. Component Design (list files to create/modify with brief descriptions)
3. Implementation Steps (high-level, 3-7 steps)
4. Testing Strategy (brief, 2-4 points)

For minimal codebases, focus on what needs to be created rather than complex architectural patterns.
Strictly follow existing patterns and architecture found in the Codebase Analysis.
Output in Markdown format.`

const tasksSystem = `You are a Technical Lead. Your goal is to break down the Technical Blueprint into a series of actionable, atomic tasks.

IMPORTANT: Scale the number of tasks to match project complexity. For simple features, generate 5-15 tasks. For complex features, generate 20-40 tasks.

Each task should:
1. Be clearly defined
2. Reference specific files and functions from the blueprint
3. Be ordered logically (dependencies first)
4. Include a brief "Definition of Done" (1 sentence)

Format the output as a Markdown Task List (checkboxes) grouped by Phase/Component (2-4 phases max for simple projects).
Keep tasks atomic and actionable. Avoid over-engineering for simple projects.`

// noClarificationMarker is the phrase the clarify prompt instructs the
// model to emit when the feature request is already clear.
const noClarificationMarker = "No clarification needed"

// Categorize builds the categorize-task prompt.
func Categorize(featureDescription string) string {
	return fmt.Sprintf("%s\n\nFeature Request: %s", categorizeSystem, featureDescription)
}

// Clarify builds the clarify-task prompt.
func Clarify(goal, codebaseContext string) string {
	return fmt.Sprintf("%s\n\nFeature Request: %s\n\nCodebase Context:\n%s", clarifySystem, goal, codebaseContext)
}

// PRD builds the prd-task prompt.
func PRD(goal, codebaseContext, additionalContext string) string {
	return fmt.Sprintf("%s\n\nGoal: %s\n\nCodebase Context:\n%s\n\nAdditional Context:\n%s",
		prdSystem, goal, codebaseContext, additionalContext)
}

// Blueprint builds the blueprint-task prompt.
func Blueprint(prdContent, codebaseContext, additionalContext string) string {
	return fmt.Sprintf("%s\n\nPRD:\n%s\n\nCodebase Analysis:\n%s\n\nAdditional Context:\n%s",
		blueprintSystem, prdContent, codebaseContext, additionalContext)
}

// Tasks builds the tasks-task prompt.
func Tasks(blueprintContent, additionalContext string) string {
	return fmt.Sprintf("%s\n\nTechnical Blueprint:\n%s\n\nAdditional Context:\n%s",
		tasksSystem, blueprintContent, additionalContext)
}

// Search builds the repo-search prompt.
func Search(query string) string {
	return fmt.Sprintf("Simulate a semantic code search result for query: '%s'. Return 2-3 mocked file paths and snippet descriptions relevant to a typical web app.", query)
}

// NeedsClarification reports whether a clarify response is asking the
// caller questions, as opposed to declaring the request already clear.
func NeedsClarification(responseText string) bool {
	return !strings.Contains(responseText, noClarificationMarker)
}
