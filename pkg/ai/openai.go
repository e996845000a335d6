package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	draftDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tutorly",
		Subsystem: "ai",
		Name:      "summary_draft_duration_seconds",
		Help:      "Duration of AI summary drafting requests",
	}, []string{"model"})

	draftFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorly",
		Subsystem: "ai",
		Name:      "summary_draft_failures_total",
		Help:      "Number of AI summary drafting failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI summary drafter.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIDrafter implements SummaryDrafter against the OpenAI chat completion API.
type OpenAIDrafter struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIDrafter builds a new drafter using the provided configuration.
func NewOpenAIDrafter(cfg OpenAIConfig) (*OpenAIDrafter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	tracer := otel.Tracer("github.com/studioflow/tutorly-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIDrafter{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Draft sends the transcript to OpenAI and parses the suggested close-out notes.
func (d *OpenAIDrafter) Draft(parent context.Context, input SummaryInput) (SummaryDraft, error) {
	ctx, span := d.tracer.Start(parent, "openai.summary_draft", trace.WithAttributes(
		attribute.String("model", d.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       d.cfg.Model,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: drafterSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildDraftPrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := d.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	draftDuration.WithLabelValues(d.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		draftFailures.WithLabelValues(d.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SummaryDraft{}, fmt.Errorf("openai draft: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		draftFailures.WithLabelValues(d.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SummaryDraft{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	draft, err := parseDraftResponse(content)
	if err != nil {
		draftFailures.WithLabelValues(d.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SummaryDraft{}, err
	}

	draft.Raw = map[string]interface{}{
		"usage": resp.Usage,
	}

	return draft, nil
}

func drafterSystemPrompt() string {
	return "You are a tutoring assistant summarising a completed session for the tutor's records. Respond with a JSON object c" +
		"ontaining summary, misconceptions, and next_steps strings. Be concise and concrete; base everything strictly on the transcript."
}

func buildDraftPrompt(input SummaryInput) string {
	builder := strings.Builder{}
	if input.StudentName != "" {
		builder.WriteString("# Student\n")
		builder.WriteString(input.StudentName)
		builder.WriteString("\n\n")
	}
	if input.LessonTitle != "" {
		builder.WriteString("# Lesson\n")
		builder.WriteString(input.LessonTitle)
		builder.WriteString("\n\n")
	}
	builder.WriteString("# Transcript\n")
	builder.WriteString(input.Transcript)
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

func parseDraftResponse(content string) (SummaryDraft, error) {
	type payload struct {
		Summary        string `json:"summary"`
		Misconceptions string `json:"misconceptions"`
		NextSteps      string `json:"next_steps"`
	}

	var data payload
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return SummaryDraft{}, fmt.Errorf("parse draft json: %w", err)
	}

	return SummaryDraft{
		Summary:        strings.TrimSpace(data.Summary),
		Misconceptions: strings.TrimSpace(data.Misconceptions),
		NextSteps:      strings.TrimSpace(data.NextSteps),
	}, nil
}
