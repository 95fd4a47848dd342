package controllers

import (
	"github.com/baguioroutes/roadadvisor/pkg/advisor"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/planner"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
)

// fixRequest validates on range only: latitude 0 / longitude 0 are real
// coordinates, so a "required" tag on the float fields would reject them.
type fixRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	SpeedMps  float64 `json:"speed" validate:"min=0"`
}

type advisoryResponse struct {
	RoadName      string  `json:"road_name,omitempty"`
	SpeedLimitKmh float64 `json:"speed_limit_kmh"`
	SpeedKmh      float64 `json:"speed_kmh"`
	DistanceMeter float64 `json:"distance_meter"`
	Matched       bool    `json:"matched"`
	Announced     bool    `json:"announced"`
	Utterance     string  `json:"utterance,omitempty"`
}

func NewAdvisoryResponse(adv advisor.Advisory) advisoryResponse {
	return advisoryResponse{
		RoadName:      adv.RoadName,
		SpeedLimitKmh: adv.LimitKmh,
		SpeedKmh:      util.RoundFloat(adv.SpeedKmh, 1),
		DistanceMeter: util.RoundFloat(adv.DistanceMeter, 1),
		Matched:       adv.Matched,
		Announced:     adv.Announced,
		Utterance:     adv.Utterance,
	}
}

type matchedRoadResponse struct {
	Name          string  `json:"name"`
	SpeedLimitKmh float64 `json:"speed_limit_kmh"`
	Color         string  `json:"color"`
}

type routePlanResponse struct {
	Polyline     string                `json:"polyline"`
	MatchedRoads []matchedRoadResponse `json:"matched_roads"`
	Region       geo.BoundingRegion    `json:"region"`
}

func NewRoutePlanResponse(result planner.RouteResult) routePlanResponse {
	matched := make([]matchedRoadResponse, len(result.MatchedRoads))
	for i, m := range result.MatchedRoads {
		matched[i] = matchedRoadResponse{
			Name:          m.Name,
			SpeedLimitKmh: m.SpeedLimitKmh,
			Color:         m.Color.String(),
		}
	}
	return routePlanResponse{
		Polyline:     geo.PolylineFromCoords(result.Polyline),
		MatchedRoads: matched,
		Region:       geo.NewBoundingRegion(result.Polyline),
	}
}

type suggestionResponse struct {
	Name string `json:"name"`
}

func NewSuggestionsResponse(features []roads.RoadFeature) []suggestionResponse {
	suggestions := make([]suggestionResponse, len(features))
	for i, f := range features {
		suggestions[i] = suggestionResponse{Name: f.GetName()}
	}
	return suggestions
}

type permissionRequest struct {
	Granted *bool `json:"granted" validate:"required"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
