package http

import (
	"log/slog"
	"net/http"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

type AggregationHandler interface {
	Aggregate(w http.ResponseWriter, r *http.Request)
	Format(w http.ResponseWriter, r *http.Request)
}

type aggregationHandlerImpl struct {
	aggService aggregation.Service
	orgService organization.Service
}

func NewAggregationHandler(aggService aggregation.Service, orgService organization.Service) AggregationHandler {
	return &aggregationHandlerImpl{
		aggService: aggService,
		orgService: orgService,
	}
}

// Aggregate handles POST /api/v1/aggregations. The manager defaults to the
// session user and the date to today.
func (h *aggregationHandlerImpl) Aggregate(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var req aggregation.TeamAggregationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if req.ManagerID == "" {
		req.ManagerID = identity.UserID
	}
	if req.Date == "" {
		req.Date = today()
	}

	manager, err := h.orgService.GetUser(r.Context(), req.ManagerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	members, reports, err := h.orgService.TeamReports(r.Context(), manager.ID, req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	aggReq := aggregation.AggregationRequest{
		Reports:     reports,
		TeamMembers: members,
		ManagerRole: manager.Role,
		Date:        req.Date,
	}

	var result aggregation.AggregationResponse
	if req.UseAI {
		result = h.aggService.AggregateWithAI(r.Context(), aggReq)
	} else {
		result = h.aggService.Aggregate(r.Context(), aggReq)
	}

	slog.Info("Team aggregated", "manager_id", manager.ID, "date", req.Date, "source", result.Source,
		"reported", result.ReportingRate.Reported, "total", result.ReportingRate.Total)
	response.Success(w, result)
}

// Format handles POST /api/v1/aggregations/format
func (h *aggregationHandlerImpl) Format(w http.ResponseWriter, r *http.Request) {
	var req aggregation.FormatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	content := h.aggService.FormatForManagementLevel(req.Content, user.Role(req.FromRole), user.Role(req.ToRole))
	response.Success(w, aggregation.FormatResponse{Content: content})
}
