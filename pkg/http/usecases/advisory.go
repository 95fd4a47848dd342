package usecases

import (
	"github.com/baguioroutes/roadadvisor/pkg/advisor"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

// AdvisoryService fronts the advisor and the road index for the transport
// layer. A fix is refused while no location grant has been reported.
type AdvisoryService struct {
	advisor *advisor.Advisor
	index   *roads.Index

	log *zap.Logger
}

func NewAdvisoryService(adv *advisor.Advisor, index *roads.Index, log *zap.Logger) *AdvisoryService {
	return &AdvisoryService{
		advisor: adv,
		index:   index,
		log:     log,
	}
}

func (s *AdvisoryService) HandleFix(lat, lon, speedMps float64) advisor.Advisory {
	return s.advisor.OnFix(advisor.PositionFix{
		Lat:      lat,
		Lon:      lon,
		SpeedMps: speedMps,
	})
}

func (s *AdvisoryService) Suggest(prefix string) []roads.RoadFeature {
	return s.index.Suggest(prefix)
}

func (s *AdvisoryService) ReportPermission(granted bool) error {
	if !granted {
		s.log.Warn("device reported location permission denied")
		return util.WrapErrorf(advisor.ErrPermissionDenied, util.ErrForbidden,
			"location permission denied by device")
	}
	s.log.Info("device reported location permission granted")
	return nil
}
