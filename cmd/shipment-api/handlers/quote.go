package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/routing"
)

// QuoteHandler handles route quotation requests.
type QuoteHandler struct {
	logger *observability.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(logger *observability.Logger) *QuoteHandler {
	return &QuoteHandler{logger: logger.WithComponent("quote-handler")}
}

// QuoteRequestDTO represents the API request for route quotes.
type QuoteRequestDTO struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	GoodsType     string  `json:"goods_type"`
	CargoValueUSD float64 `json:"cargo_value_usd"`
	TotalWeightKG float64 `json:"total_weight_kg"`
	DeadlineDays  int     `json:"deadline_days"`
}

// RouteLegDTO represents one route segment.
type RouteLegDTO struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Mode    string  `json:"mode"`
	Carrier *string `json:"carrier"`
}

// RouteOptionDTO represents one route candidate.
type RouteOptionDTO struct {
	ID        string        `json:"id"`
	Mode      string        `json:"mode"`
	ETADays   int           `json:"eta_days"`
	BasePrice float64       `json:"base_price"`
	Currency  string        `json:"currency"`
	RiskScore float64       `json:"risk_score"`
	Legs      []RouteLegDTO `json:"legs"`
}

// Quote handles POST /api/v1/routes/quote.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var reqDTO QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if reqDTO.Origin == "" || reqDTO.Destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination are required", "")
		return
	}

	candidates := routing.BuildCandidates(routing.QuoteRequest{
		Origin:        reqDTO.Origin,
		Destination:   reqDTO.Destination,
		GoodsType:     reqDTO.GoodsType,
		CargoValueUSD: reqDTO.CargoValueUSD,
		TotalWeightKG: reqDTO.TotalWeightKG,
		DeadlineDays:  reqDTO.DeadlineDays,
	})

	options := make([]RouteOptionDTO, len(candidates))
	for i, o := range candidates {
		options[i] = toRouteOptionDTO(o)
	}

	writeJSON(w, http.StatusOK, options)
}

func toRouteOptionDTO(o routing.Option) RouteOptionDTO {
	legs := make([]RouteLegDTO, len(o.Legs))
	for i, l := range o.Legs {
		legs[i] = RouteLegDTO{
			From:    l.From,
			To:      l.To,
			Mode:    string(l.Mode),
			Carrier: optionalString(l.Carrier),
		}
	}

	return RouteOptionDTO{
		ID:        o.ID,
		Mode:      string(o.Mode),
		ETADays:   o.ETADays,
		BasePrice: o.BasePrice,
		Currency:  o.Currency,
		RiskScore: o.RiskScore,
		Legs:      legs,
	}
}
