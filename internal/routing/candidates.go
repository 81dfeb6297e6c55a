package routing

// QuoteRequest describes a shipment to quote routes for.
type QuoteRequest struct {
	Origin        string
	Destination   string
	GoodsType     string
	CargoValueUSD float64
	TotalWeightKG float64
	DeadlineDays  int
}

// BuildCandidates returns the route options for a request. The options are
// deterministic stand-ins with a production-like shape, not output of a real
// carrier integration: a fast air corridor via Istanbul and a cheaper
// road-plus-sea route through the port of Poti.
func BuildCandidates(req QuoteRequest) []Option {
	optAir := Option{
		ID:        "opt_air_fast",
		Mode:      ModeAir,
		ETADays:   4,
		BasePrice: 18000.0,
		Currency:  "USD",
		RiskScore: 0.18,
		Legs: []Leg{
			{From: "EVN", To: "IST", Mode: ModeAir, Carrier: "TK"},
			{From: "IST", To: "HAM", Mode: ModeAir, Carrier: "TK"},
		},
	}

	optMulti := Option{
		ID:        "opt_multi_saver",
		Mode:      ModeMultimodal,
		ETADays:   9,
		BasePrice: 11000.0,
		Currency:  "USD",
		RiskScore: 0.25,
		Legs: []Leg{
			{From: req.Origin, To: "POTI", Mode: ModeRoad},
			{From: "POTI", To: req.Destination, Mode: ModeSea, Carrier: "MAERSK"},
		},
	}

	return []Option{optAir, optMulti}
}
