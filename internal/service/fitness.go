package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pageza/fitbuddy/backend/internal/catalog"
	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
	"github.com/pageza/fitbuddy/backend/internal/types"
)

// FitnessPlanParseFailedMessage is returned when the model reply is not a usable plan
const FitnessPlanParseFailedMessage = "Failed to parse fitness plan"

const (
	planSize               = 3
	generativePlanMaxToken = 300
)

// FitnessService builds fitness plans from a PlanSource
type FitnessService struct {
	source PlanSource
}

// NewFitnessService creates a new FitnessService instance
func NewFitnessService(source PlanSource) *FitnessService {
	return &FitnessService{source: source}
}

// FitnessPlan returns a plan for the given equipment
func (s *FitnessService) FitnessPlan(ctx context.Context, equipment string) (*types.FitnessPlanResponse, error) {
	if s.source == nil {
		return nil, apperrors.New(apperrors.CodeInitializationFailure, "fitness plan source is not configured")
	}
	plan, err := s.source.Plan(ctx, equipment)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = []types.FitnessPlanItem{}
	}
	return &types.FitnessPlanResponse{Plan: plan}, nil
}

// CatalogPlanSource samples exercises from the static catalog
type CatalogPlanSource struct {
	catalog *catalog.Catalog
	shuffle func(n int, swap func(i, j int))
}

// NewCatalogPlanSource creates a CatalogPlanSource backed by cat
func NewCatalogPlanSource(cat *catalog.Catalog) *CatalogPlanSource {
	return &CatalogPlanSource{catalog: cat, shuffle: rand.Shuffle}
}

// Plan picks up to three matching exercises at random, without replacement.
// No match yields an empty plan.
func (p *CatalogPlanSource) Plan(_ context.Context, equipment string) ([]types.FitnessPlanItem, error) {
	matches := p.catalog.Match(equipment)
	p.shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})

	n := min(planSize, len(matches))
	plan := make([]types.FitnessPlanItem, 0, n)
	for _, ex := range matches[:n] {
		plan = append(plan, types.FitnessPlanItem{Name: ex.Name, Instructions: ex.Instructions})
	}
	return plan, nil
}

// GenerativePlanSource asks the language model for a fresh plan on every call
type GenerativePlanSource struct {
	llm ChatCompleter
	now func() time.Time
}

// NewGenerativePlanSource creates a GenerativePlanSource
func NewGenerativePlanSource(llm ChatCompleter) *GenerativePlanSource {
	return &GenerativePlanSource{llm: llm, now: time.Now}
}

// FitnessPlanPrompt builds the generative prompt. The timestamp keeps
// repeated requests from producing identical plans.
func FitnessPlanPrompt(equipment string, now time.Time) string {
	return fmt.Sprintf(`Request time: %s
Create a workout of %d varied exercises that can be done with this equipment: %s.
Avoid overused exercises such as standard push-ups, squats and jumping jacks unless nothing else fits.
Respond only with JSON in exactly this format:
{"plan": [{"name": "Exercise name", "instructions": "How to perform it"}]}`,
		now.Format(time.RFC3339Nano), planSize, equipment)
}

// Plan asks the model for a plan and parses its reply.
// Every failure carries a message meant for the caller.
func (p *GenerativePlanSource) Plan(ctx context.Context, equipment string) ([]types.FitnessPlanItem, error) {
	content, err := p.llm.Complete(ctx, []Message{
		{Role: "user", Content: FitnessPlanPrompt(equipment, p.now())},
	}, generativePlanMaxToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOf(err), err, "Failed to generate fitness plan", apperrors.WithExposed())
	}

	return ParseFitnessPlan(content)
}

// ParseFitnessPlan decodes a model reply of the form {"plan": [...]}.
// A surrounding markdown code fence is ignored.
func ParseFitnessPlan(content string) ([]types.FitnessPlanItem, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &envelope); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUpstreamMalformed, err, FitnessPlanParseFailedMessage, apperrors.WithExposed())
	}

	raw, ok := envelope["plan"]
	if !ok {
		return nil, apperrors.New(apperrors.CodeUpstreamMalformed,
			"Fitness plan response is missing the plan key", apperrors.WithExposed())
	}

	var plan []types.FitnessPlanItem
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUpstreamMalformed, err, FitnessPlanParseFailedMessage, apperrors.WithExposed())
	}
	if plan == nil {
		plan = []types.FitnessPlanItem{}
	}
	return plan, nil
}

func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop an optional language tag such as ```json
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
