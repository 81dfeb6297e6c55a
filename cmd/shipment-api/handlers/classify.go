package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
)

// ClassifyHandler handles goods classification requests.
type ClassifyHandler struct {
	logger *observability.Logger
	engine *classify.Engine
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(logger *observability.Logger, engine *classify.Engine) *ClassifyHandler {
	return &ClassifyHandler{
		logger: logger.WithComponent("classify-handler"),
		engine: engine,
	}
}

// ClassifyRequestDTO represents the API request for classification.
type ClassifyRequestDTO struct {
	Text string `json:"text"`
}

// ClassifyResponseDTO represents the API response. Match fields are null
// when the input normalized to nothing.
type ClassifyResponseDTO struct {
	RawInput    string  `json:"raw_input"`
	Normalized  string  `json:"normalized"`
	MatchedDesc *string `json:"matched_desc"`
	Confidence  float64 `json:"confidence"`
	HSCode      *string `json:"hs_code"`
	RiskFlag    *string `json:"risk_flag"`
	HumanReview bool    `json:"human_review"`
}

// Classify handles POST /api/v1/classify. Empty text is not rejected: it
// yields a zero-confidence decision flagged for human review.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var reqDTO ClassifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	decision, err := h.engine.Classify(r.Context(), reqDTO.Text)
	if err != nil {
		h.logger.Error().Err(err).Msg("classification failed")
		writeError(w, http.StatusBadGateway, "classification failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toClassifyResponseDTO(decision))
}

func toClassifyResponseDTO(d classify.Decision) ClassifyResponseDTO {
	return ClassifyResponseDTO{
		RawInput:    d.RawInput,
		Normalized:  d.Normalized,
		MatchedDesc: optionalString(d.MatchedDesc),
		Confidence:  d.Confidence,
		HSCode:      optionalString(d.HSCode),
		RiskFlag:    optionalString(d.RiskFlag),
		HumanReview: d.HumanReview,
	}
}
