package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
)

const defaultNutritionBaseURL = "https://api.nal.usda.gov/fdc/v1"

// NutritionConfig describes how to reach the food search API
type NutritionConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Food is a single search hit of the food search API
type Food struct {
	Description   string         `json:"description"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient is one nutrient entry of a Food
type FoodNutrient struct {
	NutrientName string   `json:"nutrientName"`
	UnitName     string   `json:"unitName"`
	Value        *float64 `json:"value"`
}

// NutritionService searches the USDA FoodData Central API
type NutritionService struct {
	apiKey    string
	searchURL string
	client    *http.Client
	log       logrus.FieldLogger
}

// NewNutritionService creates a new NutritionService instance
func NewNutritionService(cfg NutritionConfig, log logrus.FieldLogger) (*NutritionService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("nutrition API key must be set")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultNutritionBaseURL
	}

	return &NutritionService{
		apiKey:    apiKey,
		searchURL: baseURL + "/foods/search",
		client:    newHTTPClient(cfg.Timeout),
		log:       orStandardLogger(log),
	}, nil
}

// SearchFoods runs a free text food search
func (s *NutritionService) SearchFoods(ctx context.Context, query string) ([]Food, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(err, "failed to send request to nutrition API")
	}
	defer resp.Body.Close()

	log := s.log.WithFields(logrus.Fields{
		"upstream": "nutrition",
		"status":   resp.StatusCode,
		"latency":  time.Since(start).String(),
	})

	if resp.StatusCode != http.StatusOK {
		log.WithField("body", readErrorBody(resp.Body)).Warn("nutrition search failed")
		return nil, apperrors.New(apperrors.CodeUpstreamFailure,
			fmt.Sprintf("nutrition search failed with status %d", resp.StatusCode))
	}

	var result struct {
		Foods []Food `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUpstreamMalformed, err, "failed to decode nutrition response")
	}

	log.WithField("results", len(result.Foods)).Debug("nutrition search completed")
	return result.Foods, nil
}
