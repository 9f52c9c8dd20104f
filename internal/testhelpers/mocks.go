package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

// MockMotivationService is a mock implementation of the IMotivationService interface
type MockMotivationService struct {
	mock.Mock
}

func (m *MockMotivationService) Motivate(ctx context.Context, goal string) (*types.MotivationResponse, error) {
	args := m.Called(ctx, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MotivationResponse), args.Error(1)
}

// MockFitnessService is a mock implementation of the IFitnessService interface
type MockFitnessService struct {
	mock.Mock
}

func (m *MockFitnessService) FitnessPlan(ctx context.Context, equipment string) (*types.FitnessPlanResponse, error) {
	args := m.Called(ctx, equipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FitnessPlanResponse), args.Error(1)
}

// MockFoodPlanService is a mock implementation of the IFoodPlanService interface
type MockFoodPlanService struct {
	mock.Mock
}

func (m *MockFoodPlanService) FoodPlan(ctx context.Context, dietary string) (*types.FoodPlanResponse, error) {
	args := m.Called(ctx, dietary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FoodPlanResponse), args.Error(1)
}
