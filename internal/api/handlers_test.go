package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/fitbuddy/backend/config"
	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
	"github.com/pageza/fitbuddy/backend/internal/testhelpers"
	"github.com/pageza/fitbuddy/backend/internal/types"
)

type testServer struct {
	router     *gin.Engine
	motivation *testhelpers.MockMotivationService
	fitness    *testhelpers.MockFitnessService
	food       *testhelpers.MockFoodPlanService
}

func setupTestRouter(t *testing.T, errorMode string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.Out = io.Discard

	ts := &testServer{
		router:     gin.New(),
		motivation: new(testhelpers.MockMotivationService),
		fitness:    new(testhelpers.MockFitnessService),
		food:       new(testhelpers.MockFoodPlanService),
	}
	handler := NewPlanHandler(ts.motivation, ts.fitness, ts.food, errorMode, log)
	RegisterRoutes(ts.router, handler)

	t.Cleanup(func() {
		ts.motivation.AssertExpectations(t)
		ts.fitness.AssertExpectations(t)
		ts.food.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestRouter(t, config.ErrorModeCompat)

	w := ts.get("/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"FitBuddy API is running","version":"v1.0.0"}`, w.Body.String())
}

func TestMotivateQueryDefaults(t *testing.T) {
	tests := []struct {
		name string
		path string
		goal string
	}{
		{name: "absent goal uses default", path: "/motivate", goal: types.DefaultGoal},
		{name: "explicit goal", path: "/motivate?goal=run+a+marathon", goal: "run a marathon"},
		{name: "explicit empty goal kept", path: "/motivate?goal=", goal: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestRouter(t, config.ErrorModeCompat)
			ts.motivation.On("Motivate", mock.Anything, tt.goal).
				Return(&types.MotivationResponse{Message: "You can do it!"}, nil).Once()

			w := ts.get(tt.path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"You can do it!"}`, w.Body.String())
		})
	}
}

func TestFitnessPlanResponseShape(t *testing.T) {
	ts := setupTestRouter(t, config.ErrorModeCompat)
	ts.fitness.On("FitnessPlan", mock.Anything, types.DefaultEquipment).Return(&types.FitnessPlanResponse{
		Plan: []types.FitnessPlanItem{
			{Name: "Push-up", Instructions: types.TextInstructions("Lower and press.")},
			{Name: "Bodyweight Squat", Instructions: types.StepInstructions("Sit back", "Stand up")},
		},
	}, nil).Once()

	w := ts.get("/fitness-plan")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plan":[
		{"name":"Push-up","instructions":"Lower and press."},
		{"name":"Bodyweight Squat","instructions":["Sit back","Stand up"]}
	]}`, w.Body.String())
}

func TestFitnessPlanEmpty(t *testing.T) {
	ts := setupTestRouter(t, config.ErrorModeCompat)
	ts.fitness.On("FitnessPlan", mock.Anything, "trapeze").
		Return(&types.FitnessPlanResponse{Plan: []types.FitnessPlanItem{}}, nil).Once()

	w := ts.get("/fitness-plan?equipment=trapeze")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plan":[]}`, w.Body.String())
}

func TestFoodPlanQueryDefault(t *testing.T) {
	ts := setupTestRouter(t, config.ErrorModeCompat)
	ts.food.On("FoodPlan", mock.Anything, types.DefaultDietary).Return(&types.FoodPlanResponse{
		Plan: []types.FoodPlanItem{{Name: "Apple, raw", Calories: 52}},
	}, nil).Once()

	w := ts.get("/food-plan")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plan":[{"name":"Apple, raw","calories":52}]}`, w.Body.String())
}

func TestErrorModes(t *testing.T) {
	upstream := apperrors.New(apperrors.CodeUpstreamFailure, "LLM request failed with status 401: bad key")
	foodFailure := apperrors.Wrap(apperrors.CodeUpstreamFailure, upstream, "Failed to fetch food data", apperrors.WithExposed())
	parseFailure := apperrors.New(apperrors.CodeUpstreamMalformed, "Failed to parse fitness plan", apperrors.WithExposed())
	timeout := apperrors.Wrap(apperrors.CodeTimeout, errors.New("deadline exceeded"), "failed to send request to LLM")

	tests := []struct {
		name       string
		mode       string
		path       string
		setup      func(ts *testServer)
		wantStatus int
		wantBody   string
	}{
		{
			name: "compat motivate failure is a generic 500",
			mode: config.ErrorModeCompat,
			path: "/motivate",
			setup: func(ts *testServer) {
				ts.motivation.On("Motivate", mock.Anything, types.DefaultGoal).
					Return(nil, fmt.Errorf("failed to generate motivation: %w", upstream))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name: "compat food failure keeps 200",
			mode: config.ErrorModeCompat,
			path: "/food-plan?dietary=vegan",
			setup: func(ts *testServer) {
				ts.food.On("FoodPlan", mock.Anything, "vegan").Return(nil, foodFailure)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"error":"Failed to fetch food data"}`,
		},
		{
			name: "compat fitness parse failure keeps 200",
			mode: config.ErrorModeCompat,
			path: "/fitness-plan",
			setup: func(ts *testServer) {
				ts.fitness.On("FitnessPlan", mock.Anything, types.DefaultEquipment).Return(nil, parseFailure)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"error":"Failed to parse fitness plan"}`,
		},
		{
			name: "strict food failure is a 502",
			mode: config.ErrorModeStrict,
			path: "/food-plan",
			setup: func(ts *testServer) {
				ts.food.On("FoodPlan", mock.Anything, types.DefaultDietary).Return(nil, foodFailure)
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"Failed to fetch food data"}`,
		},
		{
			name: "strict motivate failure hides upstream detail",
			mode: config.ErrorModeStrict,
			path: "/motivate",
			setup: func(ts *testServer) {
				ts.motivation.On("Motivate", mock.Anything, types.DefaultGoal).
					Return(nil, fmt.Errorf("failed to generate motivation: %w", upstream))
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"upstream request failed"}`,
		},
		{
			name: "strict timeout is a 504",
			mode: config.ErrorModeStrict,
			path: "/motivate",
			setup: func(ts *testServer) {
				ts.motivation.On("Motivate", mock.Anything, types.DefaultGoal).Return(nil, timeout)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   `{"error":"upstream request timed out"}`,
		},
		{
			name: "strict untyped error is a 500",
			mode: config.ErrorModeStrict,
			path: "/motivate",
			setup: func(ts *testServer) {
				ts.motivation.On("Motivate", mock.Anything, types.DefaultGoal).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"unknown error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestRouter(t, tt.mode)
			tt.setup(ts)

			w := ts.get(tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestNewPlanHandlerDefaultsToCompat(t *testing.T) {
	h := NewPlanHandler(nil, nil, nil, "", nil)

	assert.Equal(t, config.ErrorModeCompat, h.errorMode)
	assert.NotNil(t, h.log)
}
