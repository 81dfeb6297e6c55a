package planner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/routing"
)

func testPlanner(t *testing.T) *Planner {
	t.Helper()

	mock := embedding.NewMockClient(768)
	cat, err := catalog.New(context.Background(), mock, []catalog.Entry{
		{Description: "blutuz khospaker bluetooth speaker", HSCode: "851821", RiskLabel: "low"},
		{Description: "smartphone mobile phone", HSCode: "851712", RiskLabel: "encryption"},
	})
	require.NoError(t, err)

	engine := classify.NewEngine(observability.NopLogger(), mock, cat, classify.EngineConfig{})
	return New(observability.NopLogger(), engine)
}

func TestPlanShipment(t *testing.T) {
	pl := testPlanner(t)

	plan, err := pl.PlanShipment(context.Background(), Request{
		Origin:           "Yerevan, AM",
		Destination:      "Hamburg, DE",
		GoodsDescription: "բլուտուզ խոսփաքեր",
		GoodsType:        "electronics",
		CargoValueUSD:    120000,
		TotalWeightKG:    1500,
		DeadlineDays:     10,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, plan.PlanID)

	// Both options meet a 10-day deadline; the cheaper multimodal one wins.
	assert.Equal(t, "opt_multi_saver", plan.SelectedRoute.ID)
	assert.Equal(t, routing.SelectionWithinDeadline, plan.RouteDecision)

	assert.Equal(t, "851821", plan.Customs.HSCode)
	assert.Equal(t, "low", plan.Customs.RiskFlag)
	assert.Equal(t, "blutuz khospaker", plan.Customs.Normalized)
	assert.GreaterOrEqual(t, plan.Customs.Confidence, classify.DefaultReviewThreshold)
	assert.False(t, plan.Customs.HumanReview)
}

func TestPlanShipment_TightDeadlinePicksAir(t *testing.T) {
	pl := testPlanner(t)

	plan, err := pl.PlanShipment(context.Background(), Request{
		Origin:           "Yerevan, AM",
		Destination:      "Hamburg, DE",
		GoodsDescription: "bluetooth speaker",
		DeadlineDays:     5,
	})
	require.NoError(t, err)

	assert.Equal(t, "opt_air_fast", plan.SelectedRoute.ID)
	assert.Equal(t, routing.SelectionWithinDeadline, plan.RouteDecision)
}

func TestPlanShipment_InfeasibleDeadlineFallsBack(t *testing.T) {
	pl := testPlanner(t)

	plan, err := pl.PlanShipment(context.Background(), Request{
		Origin:           "Yerevan, AM",
		Destination:      "Hamburg, DE",
		GoodsDescription: "bluetooth speaker",
		DeadlineDays:     2,
	})
	require.NoError(t, err)

	// No route meets a 2-day deadline: cheapest overall is returned, with
	// the fallback surfaced in the decision code.
	assert.Equal(t, "opt_multi_saver", plan.SelectedRoute.ID)
	assert.Equal(t, routing.SelectionDeadlineMissed, plan.RouteDecision)
}

func TestPlanShipment_EmptyGoodsDescription(t *testing.T) {
	pl := testPlanner(t)

	plan, err := pl.PlanShipment(context.Background(), Request{
		Origin:           "Yerevan, AM",
		Destination:      "Hamburg, DE",
		GoodsDescription: "   ",
		DeadlineDays:     10,
	})
	require.NoError(t, err)

	assert.Empty(t, plan.Customs.HSCode)
	assert.Zero(t, plan.Customs.Confidence)
	assert.True(t, plan.Customs.HumanReview)
	// Route selection is independent of classification.
	assert.Equal(t, "opt_multi_saver", plan.SelectedRoute.ID)
}
