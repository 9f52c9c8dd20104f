package service

import (
	"context"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

// ChatCompleter sends a conversation to a language model
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}

// FoodSearcher runs free text food searches
type FoodSearcher interface {
	SearchFoods(ctx context.Context, query string) ([]Food, error)
}

// PlanSource produces the exercises of a fitness plan
type PlanSource interface {
	Plan(ctx context.Context, equipment string) ([]types.FitnessPlanItem, error)
}

// IMotivationService defines the interface for motivation messages
type IMotivationService interface {
	Motivate(ctx context.Context, goal string) (*types.MotivationResponse, error)
}

// IFitnessService defines the interface for fitness plans
type IFitnessService interface {
	FitnessPlan(ctx context.Context, equipment string) (*types.FitnessPlanResponse, error)
}

// IFoodPlanService defines the interface for food plans
type IFoodPlanService interface {
	FoodPlan(ctx context.Context, dietary string) (*types.FoodPlanResponse, error)
}
