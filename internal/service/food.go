package service

import (
	"context"

	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
	"github.com/pageza/fitbuddy/backend/internal/types"
)

const (
	foodPlanLimit = 3

	// FoodFetchFailedMessage is returned to the caller for every food search failure
	FoodFetchFailedMessage = "Failed to fetch food data"
)

// FoodPlanService builds food plans from nutrition search results
type FoodPlanService struct {
	nutrition FoodSearcher
}

// NewFoodPlanService creates a new FoodPlanService instance
func NewFoodPlanService(nutrition FoodSearcher) *FoodPlanService {
	return &FoodPlanService{nutrition: nutrition}
}

// FoodPlan returns at most three foods matching dietary.
// Calories is the value of the first nutrient entry, which the search API
// does not guarantee to be energy.
func (s *FoodPlanService) FoodPlan(ctx context.Context, dietary string) (*types.FoodPlanResponse, error) {
	foods, err := s.nutrition.SearchFoods(ctx, dietary)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOf(err), err, FoodFetchFailedMessage, apperrors.WithExposed())
	}

	if len(foods) > foodPlanLimit {
		foods = foods[:foodPlanLimit]
	}

	plan := make([]types.FoodPlanItem, 0, len(foods))
	for _, food := range foods {
		plan = append(plan, types.FoodPlanItem{
			Name:     food.Description,
			Calories: firstNutrientValue(food.FoodNutrients),
		})
	}

	return &types.FoodPlanResponse{Plan: plan}, nil
}

func firstNutrientValue(nutrients []FoodNutrient) float64 {
	if len(nutrients) == 0 || nutrients[0].Value == nil {
		return 0
	}
	return *nutrients[0].Value
}
