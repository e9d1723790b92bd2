// Package dashboard assembles the view models for the rendered pages:
// weak bean references resolved to display names, plus the derived
// duration metrics. Display logic never dereferences a bean id
// directly; a dangling reference renders as "Unknown Bean".
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
	"github.com/mcharron/roastlog/internal/repository/mongodb"
)

const (
	// UnknownBeanName is shown when the referenced bean no longer resolves.
	UnknownBeanName = "Unknown Bean"
	// UnsetBeanName is shown when the roast has no bean reference at all.
	UnsetBeanName = "Not Set"
	// DefaultBeanColor is the display tag used when a bean has no color.
	DefaultBeanColor = "#6B8E6F"
)

// RoastSummary is a roast enriched with resolved bean display fields and
// the derived timing metrics used by the dashboard and detail views.
type RoastSummary struct {
	models.Roast

	BeanName             string
	BeanColor            string
	TotalDurationSeconds int
	HasDuration          bool
	TimeAfterFirstCrack  int
	HasTimeAfterFC       bool
}

// Service resolves roasts into display-ready summaries.
type Service struct {
	beans  mongodb.BeanRepository
	roasts mongodb.RoastRepository
	logger *zap.Logger
}

// NewService wires a new dashboard service instance.
func NewService(beans mongodb.BeanRepository, roasts mongodb.RoastRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{beans: beans, roasts: roasts, logger: logger}
}

// ListRoasts returns all non-archived roasts, newest roast date first,
// with bean names and duration metrics resolved.
func (s *Service) ListRoasts(ctx context.Context) ([]RoastSummary, error) {
	roasts, err := s.roasts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roasts: %w", err)
	}

	summaries := make([]RoastSummary, 0, len(roasts))
	for i := range roasts {
		summaries = append(summaries, s.summarize(ctx, roasts[i]))
	}
	return summaries, nil
}

// RoastDetail resolves one non-archived roast. A missing or archived
// roast surfaces as ErrNotFound.
func (s *Service) RoastDetail(ctx context.Context, id primitive.ObjectID) (*RoastSummary, error) {
	roast, err := s.roasts.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(ctx, *roast)
	return &summary, nil
}

func (s *Service) summarize(ctx context.Context, roast models.Roast) RoastSummary {
	summary := RoastSummary{Roast: roast}
	summary.BeanName, summary.BeanColor = s.resolveBean(ctx, roast.BeanID)
	summary.TotalDurationSeconds, summary.HasDuration = roast.Duration()
	summary.TimeAfterFirstCrack, summary.HasTimeAfterFC = roast.TimeAfterFirstCrack()
	return summary
}

// resolveBean is the injected-lookup path for the weak bean reference.
// Archived beans still resolve here so historical roasts keep their
// bean name on display.
func (s *Service) resolveBean(ctx context.Context, id *primitive.ObjectID) (string, string) {
	if id == nil {
		return UnsetBeanName, DefaultBeanColor
	}

	bean, err := s.beans.FindByID(ctx, *id)
	if errors.Is(err, apierror.ErrNotFound) {
		return UnknownBeanName, DefaultBeanColor
	}
	if err != nil {
		s.logger.Warn("bean lookup failed", zap.String("bean_id", id.Hex()), zap.Error(err))
		return UnknownBeanName, DefaultBeanColor
	}

	color := bean.Color
	if color == "" {
		color = DefaultBeanColor
	}
	return bean.Name, color
}
