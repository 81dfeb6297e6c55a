// Package planner fuses route selection and customs classification into one
// shipment plan.
package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/routing"
)

// Request describes a shipment to plan.
type Request struct {
	Origin           string
	Destination      string
	GoodsDescription string
	GoodsType        string
	CargoValueUSD    float64
	TotalWeightKG    float64
	DeadlineDays     int
}

// CustomsDecision is the classification subset carried in a plan.
type CustomsDecision struct {
	HSCode      string
	RiskFlag    string
	Confidence  float64
	Normalized  string
	HumanReview bool
}

// Plan is the fused shipment plan. It is derived per request and not
// persisted.
type Plan struct {
	PlanID        uuid.UUID
	SelectedRoute routing.Option
	RouteDecision routing.SelectionCode
	Customs       CustomsDecision
}

// Planner composes the route selector and the classification engine. The two
// sub-calls are independent and share no mutable state.
type Planner struct {
	logger *observability.Logger
	engine *classify.Engine
}

// New creates a planner over a classification engine.
func New(logger *observability.Logger, engine *classify.Engine) *Planner {
	return &Planner{
		logger: logger.WithComponent("planner"),
		engine: engine,
	}
}

// PlanShipment builds route candidates, selects one under the deadline
// constraint, classifies the goods description, and merges both outcomes.
// A classification failure fails the whole plan.
func (p *Planner) PlanShipment(ctx context.Context, req Request) (Plan, error) {
	candidates := routing.BuildCandidates(routing.QuoteRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		GoodsType:     req.GoodsType,
		CargoValueUSD: req.CargoValueUSD,
		TotalWeightKG: req.TotalWeightKG,
		DeadlineDays:  req.DeadlineDays,
	})

	route, code, err := routing.Select(routing.Constraints{DeadlineDays: req.DeadlineDays}, candidates)
	if err != nil {
		return Plan{}, fmt.Errorf("select route: %w", err)
	}

	decision, err := p.engine.Classify(ctx, req.GoodsDescription)
	if err != nil {
		return Plan{}, fmt.Errorf("classify goods: %w", err)
	}

	plan := Plan{
		PlanID:        uuid.New(),
		SelectedRoute: route,
		RouteDecision: code,
		Customs: CustomsDecision{
			HSCode:      decision.HSCode,
			RiskFlag:    decision.RiskFlag,
			Confidence:  decision.Confidence,
			Normalized:  decision.Normalized,
			HumanReview: decision.HumanReview,
		},
	}

	p.logger.Info().
		Str("plan_id", plan.PlanID.String()).
		Str("route", route.ID).
		Str("route_decision", string(code)).
		Str("hs_code", decision.HSCode).
		Bool("human_review", decision.HumanReview).
		Msg("shipment plan built")

	return plan, nil
}
