package usecases

import (
	"errors"
	"testing"

	"github.com/baguioroutes/roadadvisor/pkg/advisor"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/matcher"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

type noopPresenter struct{}

func (noopPresenter) Announce(text string) {}

func (noopPresenter) ShowCurrentRoad(roadName string, limitKmh, speedKmh float64) {}

func newService(t *testing.T) *AdvisoryService {
	t.Helper()
	idx := roads.NewIndex([]roads.RoadFeature{
		roads.NewRoadFeature("Session Road", nil, []geo.Coordinate{
			geo.NewCoordinate(16.4100, 120.5900),
			geo.NewCoordinate(16.4100, 120.6000),
		}),
	}, roads.DefaultSpeedTable())
	m := matcher.NewMatcher(idx, zap.NewNop())
	adv := advisor.NewAdvisor(m, idx, noopPresenter{}, nil, zap.NewNop())
	return NewAdvisoryService(adv, idx, zap.NewNop())
}

func TestHandleFix(t *testing.T) {
	svc := newService(t)

	out := svc.HandleFix(16.4101, 120.5950, 10/3.6)
	if !out.Matched || out.RoadName != "Session Road" {
		t.Errorf("advisory %+v, want match on Session Road", out)
	}
}

func TestSuggestPassThrough(t *testing.T) {
	svc := newService(t)

	if got := svc.Suggest("session"); len(got) != 1 {
		t.Errorf("got %d suggestions, want 1", len(got))
	}
	if got := svc.Suggest(""); got != nil {
		t.Errorf("empty prefix: got %v, want nil", got)
	}
}

func TestReportPermission(t *testing.T) {
	svc := newService(t)

	if err := svc.ReportPermission(true); err != nil {
		t.Errorf("granted: err %v, want nil", err)
	}

	err := svc.ReportPermission(false)
	if err == nil {
		t.Fatal("denied: want error")
	}
	if !errors.Is(err, advisor.ErrPermissionDenied) {
		t.Error("want ErrPermissionDenied in the chain")
	}
	var domainErr *util.Error
	if !errors.As(err, &domainErr) || domainErr.Code() != util.ErrForbidden {
		t.Error("want forbidden domain code")
	}
}
