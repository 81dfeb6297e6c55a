// Package main provides UI utilities for the shipment engine CLI.
package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/routing"
)

// UI provides user-friendly output utilities.
type UI struct {
	jsonMode bool
	noColor  bool
}

func newUI(jsonMode, noColor bool) *UI {
	return &UI{jsonMode: jsonMode, noColor: noColor}
}

// Spinner starts a spinner with a message and returns a stop function.
// In JSON mode it is a no-op so machine output stays clean.
func (ui *UI) Spinner(msg string) func() {
	if ui.jsonMode {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

// PrintDecision renders one classification decision.
func (ui *UI) PrintDecision(d classify.Decision) {
	fmt.Printf("%s\n", ui.bold(d.RawInput))
	fmt.Printf("  normalized: %s\n", d.Normalized)

	if !d.Matched() {
		fmt.Printf("  %s\n", ui.yellow("no match (empty input), needs human review"))
		return
	}

	fmt.Printf("  hs_code:    %s  (risk: %s)\n", ui.bold(d.HSCode), d.RiskFlag)
	fmt.Printf("  matched:    %s\n", d.MatchedDesc)
	if d.HumanReview {
		fmt.Printf("  confidence: %s\n", ui.yellow(fmt.Sprintf("%.3f, below threshold, needs human review", d.Confidence)))
	} else {
		fmt.Printf("  confidence: %s\n", ui.green(fmt.Sprintf("%.3f", d.Confidence)))
	}
}

// PrintPlan renders a shipment plan.
func (ui *UI) PrintPlan(p planner.Plan) {
	fmt.Printf("Plan %s\n", p.PlanID)

	fmt.Printf("  route: %s (%s, %d days, %.0f %s, risk %.2f)\n",
		ui.bold(p.SelectedRoute.ID), p.SelectedRoute.Mode, p.SelectedRoute.ETADays,
		p.SelectedRoute.BasePrice, p.SelectedRoute.Currency, p.SelectedRoute.RiskScore)
	for _, leg := range p.SelectedRoute.Legs {
		carrier := leg.Carrier
		if carrier == "" {
			carrier = "unassigned"
		}
		fmt.Printf("    %s -> %s (%s, %s)\n", leg.From, leg.To, leg.Mode, carrier)
	}

	if p.RouteDecision == routing.SelectionDeadlineMissed {
		fmt.Printf("  %s\n", ui.yellow("no route meets the deadline, cheapest overall selected"))
	}

	if p.Customs.HSCode == "" {
		fmt.Printf("  customs: %s\n", ui.yellow("unclassified, needs human review"))
		return
	}
	fmt.Printf("  customs: HS %s, risk %s, confidence %.3f", p.Customs.HSCode, p.Customs.RiskFlag, p.Customs.Confidence)
	if p.Customs.HumanReview {
		fmt.Printf(" %s", ui.yellow("(needs human review)"))
	}
	fmt.Println()
}

// PrintCatalogEntry renders one catalog entry.
func (ui *UI) PrintCatalogEntry(e catalog.Entry) {
	fmt.Printf("%s  risk=%-10s %s\n", ui.bold(e.HSCode), e.RiskLabel, e.Description)
}

func (ui *UI) bold(s string) string {
	if ui.noColor {
		return s
	}
	return color.New(color.Bold).Sprint(s)
}

func (ui *UI) green(s string) string {
	if ui.noColor {
		return s
	}
	return color.New(color.FgGreen).Sprint(s)
}

func (ui *UI) yellow(s string) string {
	if ui.noColor {
		return s
	}
	return color.New(color.FgYellow).Sprint(s)
}
