package main

import (
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
)

// decisionOutput is the machine-readable shape of a classification decision.
// It mirrors the API response: match fields render as JSON null when the
// input normalized to nothing, so `--json` output and the HTTP surface stay
// interchangeable for automation.
type decisionOutput struct {
	RawInput    string  `json:"raw_input"`
	Normalized  string  `json:"normalized"`
	MatchedDesc *string `json:"matched_desc"`
	Confidence  float64 `json:"confidence"`
	HSCode      *string `json:"hs_code"`
	RiskFlag    *string `json:"risk_flag"`
	HumanReview bool    `json:"human_review"`
}

func newDecisionOutput(d classify.Decision) decisionOutput {
	return decisionOutput{
		RawInput:    d.RawInput,
		Normalized:  d.Normalized,
		MatchedDesc: nullableString(d.MatchedDesc),
		Confidence:  d.Confidence,
		HSCode:      nullableString(d.HSCode),
		RiskFlag:    nullableString(d.RiskFlag),
		HumanReview: d.HumanReview,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
