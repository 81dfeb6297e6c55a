// Package main provides the shipment engine CLI entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/config"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
)

var (
	cfgFile    string
	outputJSON bool
	noColor    bool

	cfg    *config.Config
	logger *observability.Logger
)

// demoSamples are the canonical mixed-script inputs used by the classify
// --demo loop.
var demoSamples = []string{
	"բլուտուզ խոսփաքեր",
	"айфон 15 про",
	"электро дрель",
	"мужская футболка хлопок",
	"bluetooth speaker",
	"дрель power tool",
}

var rootCmd = &cobra.Command{
	Use:   "shipment-cli",
	Short: "Shipment engine CLI for classification and route planning",
	Long: `Shipment engine CLI provides commands for customs HS classification
and shipment planning.

Use this tool to:
- Classify free-text goods descriptions into HS codes with a risk flag
- Plan a shipment: route selection under a deadline plus customs decision
- Inspect the reference catalog

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.Observability.LogLevel,
			Format:      logFormat,
			ServiceName: "shipment-cli",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(catalogCmd)
}

var classifyDemo bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a goods description into an HS code",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ui := newUI(outputJSON, noColor)

		engine, err := buildEngine(ctx, ui)
		if err != nil {
			return err
		}

		inputs := []string{strings.Join(args, " ")}
		if classifyDemo {
			inputs = demoSamples
		} else if len(args) == 0 {
			return fmt.Errorf("provide a goods description or use --demo")
		}

		for _, text := range inputs {
			decision, err := engine.Classify(ctx, text)
			if err != nil {
				return fmt.Errorf("classify %q: %w", text, err)
			}

			if outputJSON {
				if err := json.NewEncoder(os.Stdout).Encode(newDecisionOutput(decision)); err != nil {
					return err
				}
				continue
			}
			ui.PrintDecision(decision)
		}

		return nil
	},
}

var planFlags struct {
	origin        string
	destination   string
	goods         string
	goodsType     string
	cargoValueUSD float64
	totalWeightKG float64
	deadlineDays  int
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a shipment: select a route and classify the goods",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ui := newUI(outputJSON, noColor)

		engine, err := buildEngine(ctx, ui)
		if err != nil {
			return err
		}

		pl := planner.New(logger, engine)
		plan, err := pl.PlanShipment(ctx, planner.Request{
			Origin:           planFlags.origin,
			Destination:      planFlags.destination,
			GoodsDescription: planFlags.goods,
			GoodsType:        planFlags.goodsType,
			CargoValueUSD:    planFlags.cargoValueUSD,
			TotalWeightKG:    planFlags.totalWeightKG,
			DeadlineDays:     planFlags.deadlineDays,
		})
		if err != nil {
			return fmt.Errorf("plan shipment: %w", err)
		}

		if outputJSON {
			return json.NewEncoder(os.Stdout).Encode(plan)
		}
		ui.PrintPlan(plan)

		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the reference catalog entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loadEntries()
		if err != nil {
			return err
		}

		if outputJSON {
			return json.NewEncoder(os.Stdout).Encode(entries)
		}

		ui := newUI(outputJSON, noColor)
		for _, e := range entries {
			ui.PrintCatalogEntry(e)
		}

		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyDemo, "demo", false, "classify a built-in set of mixed-script samples")

	planCmd.Flags().StringVar(&planFlags.origin, "origin", "Yerevan, AM", "shipment origin")
	planCmd.Flags().StringVar(&planFlags.destination, "destination", "Hamburg, DE", "shipment destination")
	planCmd.Flags().StringVar(&planFlags.goods, "goods", "", "goods description (any script)")
	planCmd.Flags().StringVar(&planFlags.goodsType, "goods-type", "general", "goods type")
	planCmd.Flags().Float64Var(&planFlags.cargoValueUSD, "cargo-value", 0, "cargo value in USD")
	planCmd.Flags().Float64Var(&planFlags.totalWeightKG, "weight", 0, "total weight in kg")
	planCmd.Flags().IntVar(&planFlags.deadlineDays, "deadline", 10, "deadline in days")
	_ = planCmd.MarkFlagRequired("goods")
}

// loadEntries resolves the catalog source from config.
func loadEntries() ([]catalog.Entry, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadEntries(cfg.Catalog.Path)
	}
	return catalog.DefaultEntries(), nil
}

// buildEngine embeds the reference catalog and wires the classification
// engine. The embedding warm-up is the one slow step, so it runs behind a
// spinner.
func buildEngine(ctx context.Context, ui *UI) (*classify.Engine, error) {
	var embedder embedding.Embedder
	if cfg.Embedding.Provider == "mock" {
		embedder = embedding.NewMockClient(cfg.Embedding.Dimension)
	} else {
		client, err := embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create embedding client: %w", err)
		}
		embedder = client
	}

	entries, err := loadEntries()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	stop := ui.Spinner(fmt.Sprintf("Embedding %d catalog entries with %s...", len(entries), embedder.Model()))
	cat, err := catalog.New(ctx, embedder, entries)
	stop()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	return classify.NewEngine(logger, embedder, cat, classify.EngineConfig{
		ReviewThreshold: cfg.Classification.ReviewThreshold,
	}), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
