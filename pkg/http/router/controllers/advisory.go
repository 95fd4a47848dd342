package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/baguioroutes/roadadvisor/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type advisoryAPI struct {
	advisoryService  AdvisoryService
	routePlanService RoutePlanService
	log              *zap.Logger
}

func New(advisoryService AdvisoryService, routePlanService RoutePlanService, log *zap.Logger) *advisoryAPI {
	return &advisoryAPI{
		advisoryService:  advisoryService,
		routePlanService: routePlanService,
		log:              log,
	}
}

func (api *advisoryAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.planRoute)
	group.GET("/suggest", api.suggest)
	group.POST("/fix", api.reportFix)
	group.POST("/permission", api.reportPermission)
}

func (api *advisoryAPI) planRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query().Get("q")
	if query == "" {
		api.BadRequestResponse(w, r, errors.New("q is required"))
		return
	}

	result, err := api.routePlanService.PlanRoute(r.Context(), query)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRoutePlanResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *advisoryAPI) suggest(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query().Get("q")

	features := api.advisoryService.Suggest(query)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSuggestionsResponse(features)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *advisoryAPI) reportFix(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request fixRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	advisory := api.advisoryService.HandleFix(request.Latitude, request.Longitude, request.SpeedMps)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewAdvisoryResponse(advisory)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *advisoryAPI) reportPermission(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request permissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.Granted == nil {
		api.BadRequestResponse(w, r, errors.New("granted is required"))
		return
	}

	if err := api.advisoryService.ReportPermission(*request.Granted); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": "ok"}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
