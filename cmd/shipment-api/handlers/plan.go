package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
)

// PlanHandler handles shipment planning requests.
type PlanHandler struct {
	logger  *observability.Logger
	planner *planner.Planner
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(logger *observability.Logger, pl *planner.Planner) *PlanHandler {
	return &PlanHandler{
		logger:  logger.WithComponent("plan-handler"),
		planner: pl,
	}
}

// PlanRequestDTO represents the API request for shipment planning.
type PlanRequestDTO struct {
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	GoodsDescription string  `json:"goods_description"`
	GoodsType        string  `json:"goods_type"`
	CargoValueUSD    float64 `json:"cargo_value_usd"`
	TotalWeightKG    float64 `json:"total_weight_kg"`
	DeadlineDays     int     `json:"deadline_days"`
}

// CustomsDecisionDTO is the classification subset of a plan.
type CustomsDecisionDTO struct {
	HSCode      *string `json:"hs_code"`
	RiskFlag    *string `json:"risk_flag"`
	Confidence  float64 `json:"confidence"`
	Normalized  string  `json:"normalized"`
	HumanReview bool    `json:"human_review"`
}

// PlanResponseDTO represents the API response for shipment planning.
type PlanResponseDTO struct {
	PlanID        string             `json:"plan_id"`
	SelectedRoute RouteOptionDTO     `json:"selected_route"`
	RouteDecision string             `json:"route_decision"`
	Customs       CustomsDecisionDTO `json:"customs"`
}

// Plan handles POST /api/v1/shipments/plan.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var reqDTO PlanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if reqDTO.Origin == "" || reqDTO.Destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination are required", "")
		return
	}
	if reqDTO.DeadlineDays < 0 {
		writeError(w, http.StatusBadRequest, "deadline_days must not be negative", "")
		return
	}

	plan, err := h.planner.PlanShipment(r.Context(), planner.Request{
		Origin:           reqDTO.Origin,
		Destination:      reqDTO.Destination,
		GoodsDescription: reqDTO.GoodsDescription,
		GoodsType:        reqDTO.GoodsType,
		CargoValueUSD:    reqDTO.CargoValueUSD,
		TotalWeightKG:    reqDTO.TotalWeightKG,
		DeadlineDays:     reqDTO.DeadlineDays,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("shipment planning failed")
		writeError(w, http.StatusBadGateway, "shipment planning failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PlanResponseDTO{
		PlanID:        plan.PlanID.String(),
		SelectedRoute: toRouteOptionDTO(plan.SelectedRoute),
		RouteDecision: string(plan.RouteDecision),
		Customs: CustomsDecisionDTO{
			HSCode:      optionalString(plan.Customs.HSCode),
			RiskFlag:    optionalString(plan.Customs.RiskFlag),
			Confidence:  plan.Customs.Confidence,
			Normalized:  plan.Customs.Normalized,
			HumanReview: plan.Customs.HumanReview,
		},
	})
}
