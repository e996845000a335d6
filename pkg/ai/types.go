package ai

import "context"

// SummaryInput carries the material the drafter works from.
type SummaryInput struct {
	StudentName string
	LessonTitle string
	Transcript  string
}

// SummaryDraft is the structured close-out suggestion returned by the drafter.
type SummaryDraft struct {
	Summary        string                 `json:"summary"`
	Misconceptions string                 `json:"misconceptions"`
	NextSteps      string                 `json:"next_steps"`
	Raw            map[string]interface{} `json:"raw,omitempty"`
}

// SummaryDrafter describes an AI model capable of drafting session close-out notes.
type SummaryDrafter interface {
	Draft(ctx context.Context, input SummaryInput) (SummaryDraft, error)
}
