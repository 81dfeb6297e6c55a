package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
)

func testEngine(t *testing.T) *classify.Engine {
	t.Helper()

	mock := embedding.NewMockClient(768)
	cat, err := catalog.New(context.Background(), mock, []catalog.Entry{
		{Description: "blutuz khospaker bluetooth speaker", HSCode: "851821", RiskLabel: "low"},
		{Description: "smartphone mobile phone", HSCode: "851712", RiskLabel: "encryption"},
	})
	require.NoError(t, err)

	return classify.NewEngine(observability.NopLogger(), mock, cat, classify.EngineConfig{})
}

func testPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	return planner.New(observability.NopLogger(), testEngine(t))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestClassifyHandler_Match(t *testing.T) {
	h := NewClassifyHandler(observability.NopLogger(), testEngine(t))

	rec := postJSON(t, h.Classify, `{"text":"բլուտուզ խոսփաքեր"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClassifyResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "բլուտուզ խոսփաքեր", resp.RawInput)
	assert.Equal(t, "blutuz khospaker", resp.Normalized)
	require.NotNil(t, resp.HSCode)
	assert.Equal(t, "851821", *resp.HSCode)
	require.NotNil(t, resp.RiskFlag)
	assert.Equal(t, "low", *resp.RiskFlag)
	assert.GreaterOrEqual(t, resp.Confidence, 0.6)
	assert.False(t, resp.HumanReview)
}

func TestClassifyHandler_EmptyTextYieldsNulls(t *testing.T) {
	h := NewClassifyHandler(observability.NopLogger(), testEngine(t))

	rec := postJSON(t, h.Classify, `{"text":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	assert.Nil(t, raw["hs_code"])
	assert.Nil(t, raw["risk_flag"])
	assert.Nil(t, raw["matched_desc"])
	assert.Equal(t, 0.0, raw["confidence"])
	assert.Equal(t, true, raw["human_review"])
}

func TestClassifyHandler_InvalidBody(t *testing.T) {
	h := NewClassifyHandler(observability.NopLogger(), testEngine(t))

	rec := postJSON(t, h.Classify, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyHandler_ConfidenceInRange(t *testing.T) {
	h := NewClassifyHandler(observability.NopLogger(), testEngine(t))

	for _, text := range []string{"bluetooth speaker", "айфон", "что-то невнятное", ""} {
		body, err := json.Marshal(ClassifyRequestDTO{Text: text})
		require.NoError(t, err)

		rec := postJSON(t, h.Classify, string(body))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ClassifyResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, resp.Confidence, 0.0)
		assert.LessOrEqual(t, resp.Confidence, 1.0)
	}
}
