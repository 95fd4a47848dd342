package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/baguioroutes/roadadvisor/pkg/planner"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

// RoutePlanService validates destination queries before handing them to
// the route planner.
type RoutePlanService struct {
	planner *planner.RoutePlanner

	log *zap.Logger
}

func NewRoutePlanService(p *planner.RoutePlanner, log *zap.Logger) *RoutePlanService {
	return &RoutePlanService{
		planner: p,
		log:     log,
	}
}

func (s *RoutePlanService) PlanRoute(ctx context.Context, query string) (planner.RouteResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return planner.RouteResult{}, util.WrapErrorf(errors.New("empty destination query"),
			util.ErrBadParamInput, "destination query must not be empty")
	}

	return s.planner.PlanRoute(ctx, query)
}
