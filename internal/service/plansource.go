package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fitbuddy/backend/config"
	"github.com/pageza/fitbuddy/backend/internal/catalog"
	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
)

// PlanSourceConfig selects the fitness plan strategy
type PlanSourceConfig struct {
	Source      string
	CatalogPath string
	// NewS3 is only called when CatalogPath is an s3:// location
	NewS3 func(ctx context.Context) (catalog.ObjectGetter, error)
}

// NewPlanSource builds the configured PlanSource. The catalog is read once here.
func NewPlanSource(ctx context.Context, cfg PlanSourceConfig, llm ChatCompleter, log logrus.FieldLogger) (PlanSource, error) {
	switch cfg.Source {
	case config.PlanSourceGenerative:
		if llm == nil {
			return nil, apperrors.New(apperrors.CodeInitializationFailure, "generative plan source needs an LLM client")
		}
		return NewGenerativePlanSource(llm), nil
	case config.PlanSourceCatalog, "":
	default:
		return nil, apperrors.New(apperrors.CodeInitializationFailure,
			fmt.Sprintf("unknown fitness plan source %q", cfg.Source))
	}

	var getter catalog.ObjectGetter
	if catalog.IsS3Location(cfg.CatalogPath) {
		if cfg.NewS3 == nil {
			return nil, apperrors.New(apperrors.CodeInitializationFailure, "catalog is on S3 but no S3 client is configured")
		}
		client, err := cfg.NewS3(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInitializationFailure, err, "failed to create S3 client")
		}
		getter = client
	}

	cat, err := catalog.NewLoader(getter).Load(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInitializationFailure, err, "failed to load exercise catalog")
	}
	orStandardLogger(log).WithFields(logrus.Fields{
		"location":  cfg.CatalogPath,
		"exercises": cat.Len(),
	}).Info("Exercise catalog loaded")

	return NewCatalogPlanSource(cat), nil
}
