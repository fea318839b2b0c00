// Command evaluator runs a trading-card submission through the acceptance
// pipeline: load the reference data, evaluate the submission, attempt
// curation on rejection, and write the report files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/the-muppet/SubmissionEvaluator/internal/config"
	"github.com/the-muppet/SubmissionEvaluator/internal/core"
	"github.com/the-muppet/SubmissionEvaluator/internal/dataset"
	"github.com/the-muppet/SubmissionEvaluator/internal/logging"
	"github.com/the-muppet/SubmissionEvaluator/internal/schema"
)

func main() {
	file := flag.String("file", "", "path to the submission file (.csv or .xlsx)")
	store := flag.String("store", "", "store name for the submission record")
	email := flag.String("email", "", "seller email for the submission record")
	threshold := flag.String("threshold", "", "fixed ACV threshold; overrides the match-rate policy")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: evaluator -file submission.csv [-store NAME] [-email ADDR] [-threshold 3.00]")
		os.Exit(2)
	}

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"pullsheet", cfg.Files.Pullsheet,
		"catalog", cfg.Files.Catalog,
		"pull_order", cfg.Files.PullOrder,
		"output_dir", cfg.Output.Dir,
	)

	policy, err := buildPolicy(cfg, *threshold)
	if err != nil {
		slog.Error("invalid threshold", "error", err)
		os.Exit(1)
	}

	evaluator, err := loadEvaluator(cfg)
	if err != nil {
		slog.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}
	for _, skip := range evaluator.ReferenceSkipped {
		slog.Warn("reference row skipped", "dataset", skip.Dataset, "row", skip.Line, "reason", skip.Reason)
	}

	subDS, err := dataset.ReadFile(string(schema.KindSubmission), *file)
	if err != nil {
		slog.Error("failed to read submission", "file", *file, "error", err)
		os.Exit(1)
	}

	records, skipped, err := core.LoadSubmission(subDS)
	if err != nil {
		slog.Error("failed to load submission", "file", *file, "error", err)
		os.Exit(1)
	}

	sub := core.NewSubmission(records, *store, *email)
	logger := logging.ForSubmission(sub.ID)
	logger.Info("evaluating submission",
		"store", sub.StoreName,
		"items", len(sub.Records),
		"skipped_rows", len(skipped),
	)

	result, err := evaluator.EvaluateSubmission(sub, skipped, policy)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("evaluation complete",
		"status", result.Status,
		"curated", result.Curated,
		"removed_items", len(result.RemovedItems),
	)

	printSummary(result)

	if err := writeOutputs(cfg, evaluator, result); err != nil {
		logger.Error("failed to write outputs", "error", err)
		os.Exit(1)
	}
}

// buildPolicy returns the threshold policy: the configured match-rate policy
// by default, or a flat one when a fixed threshold was passed.
func buildPolicy(cfg *config.Config, fixed string) (core.ThresholdPolicy, error) {
	if fixed != "" {
		t, err := decimal.NewFromString(fixed)
		if err != nil || t.IsNegative() {
			return core.ThresholdPolicy{}, fmt.Errorf("threshold %q must be a non-negative decimal", fixed)
		}
		return core.ThresholdPolicy{Upper: t, Lower: t}, nil
	}

	// Parseability is checked by config validation.
	upper, _ := decimal.NewFromString(cfg.Rules.ACVUpper)
	lower, _ := decimal.NewFromString(cfg.Rules.ACVLower)
	return core.ThresholdPolicy{
		Upper:          upper,
		Lower:          lower,
		MatchRatePivot: float64(cfg.Rules.MatchRatePivot),
	}, nil
}

// loadEvaluator reads the three reference datasets from their configured
// paths and builds the evaluation context.
func loadEvaluator(cfg *config.Config) (*core.Evaluator, error) {
	pullsheet, err := dataset.ReadFile(string(schema.KindPullsheet), cfg.Files.Pullsheet)
	if err != nil {
		return nil, err
	}
	catalog, err := dataset.ReadFile(string(schema.KindCatalog), cfg.Files.Catalog)
	if err != nil {
		return nil, err
	}
	pullOrder, err := dataset.ReadFile(string(schema.KindPullOrder), cfg.Files.PullOrder)
	if err != nil {
		return nil, err
	}

	return core.NewEvaluator(pullsheet, catalog, pullOrder)
}

// printSummary writes the human-readable evaluation summary to stdout.
func printSummary(r *core.EvaluationResult) {
	title := "Submission Evaluation"
	if r.Curated {
		title += " - Curated"
	}
	fmt.Println(title)
	fmt.Println("------------------")

	if r.Metrics.Defined {
		fmt.Printf("Match Rate: %.2f%%\n", r.Metrics.MatchRate)
	} else {
		fmt.Println("Match Rate: undefined")
	}
	fmt.Printf("Total Value: $%s\n", r.Metrics.TotalValue.StringFixed(2))
	fmt.Printf("Total Quantity: %d\n", r.Metrics.TotalQuantity)
	if r.Metrics.Defined {
		fmt.Printf("Pullsheet Missing Rate: %.2f%%\n", r.Metrics.PullsheetMissingRate)
	} else {
		fmt.Println("Pullsheet Missing Rate: undefined")
	}
	if r.Metrics.CatalogRateDefined {
		fmt.Printf("Catalog on Pullsheet Rate: %.2f%%\n", r.Metrics.CatalogOnPullsheetRate)
	}
	fmt.Printf("Total Rejected Quantity: %d\n", r.Metrics.TotalRejectedQty)
	if r.Metrics.Defined {
		fmt.Printf("ACV: $%s\n", r.Metrics.ACV.StringFixed(2))
	} else {
		fmt.Println("ACV: undefined")
	}

	status := "Rejected"
	if r.Status == core.StatusAccepted {
		status = "Accepted"
	}
	fmt.Printf("Status: %s\n", status)
	if r.Curated {
		fmt.Printf("Items removed by curation: %d\n", len(r.RemovedItems))
	}
}

// writeOutputs writes the report CSV and JSON, the skipped-rows file, the
// curation export, and the pick list for accepted submissions.
func writeOutputs(cfg *config.Config, evaluator *core.Evaluator, r *core.EvaluationResult) error {
	reportPath := filepath.Join(cfg.Output.Dir, cfg.Output.ReportFile)
	if err := dataset.WriteCSV(reportPath, core.ReportColumns, []dataset.Row{r.ReportRow()}); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	jsonPath := reportPath[:len(reportPath)-len(filepath.Ext(reportPath))] + ".json"
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return err
	}

	if len(r.Skipped) > 0 {
		if err := writeSkipped(filepath.Join(cfg.Output.Dir, cfg.Output.SkippedFile), r.Skipped); err != nil {
			return err
		}
		slog.Info("skipped rows written", "count", len(r.Skipped))
	}

	if r.Curated {
		if err := writeCurationExport(cfg.Output.Dir, r); err != nil {
			return err
		}
	}

	if picks := evaluator.PickList(r); len(picks) > 0 {
		if err := writePickList(filepath.Join(cfg.Output.Dir, "pull_list.csv"), picks); err != nil {
			return err
		}
	}

	slog.Info("report written", "csv", reportPath, "json", jsonPath)
	return nil
}

func writeSkipped(path string, skipped []core.SkippedRow) error {
	columns := []string{"dataset", "row", "reason"}
	rows := make([]dataset.Row, len(skipped))
	for i, s := range skipped {
		rows[i] = dataset.Row{
			"dataset": s.Dataset,
			"row":     fmt.Sprintf("%d", s.Line),
			"reason":  s.Reason,
		}
	}
	return dataset.WriteCSV(path, columns, rows)
}

// writeCurationExport writes whichever of the curated submission or the
// removed-items list is smaller; the counterpart is derivable from the
// original file, so the smaller export carries the same information.
func writeCurationExport(dir string, r *core.EvaluationResult) error {
	if len(r.CuratedRecords) < len(r.RemovedItems) {
		columns := []string{"tcgplayer_id", "add_to_quantity", "tcg_market_price"}
		rows := make([]dataset.Row, len(r.CuratedRecords))
		for i, rec := range r.CuratedRecords {
			rows[i] = dataset.Row{
				"tcgplayer_id":     rec.ItemID,
				"add_to_quantity":  fmt.Sprintf("%d", rec.Quantity),
				"tcg_market_price": rec.UnitValue.StringFixed(2),
			}
		}
		return dataset.WriteCSV(filepath.Join(dir, "curated_submission.csv"), columns, rows)
	}

	columns := []string{"tcgplayer_id"}
	rows := make([]dataset.Row, len(r.RemovedItems))
	for i, id := range r.RemovedItems {
		rows[i] = dataset.Row{"tcgplayer_id": id}
	}
	return dataset.WriteCSV(filepath.Join(dir, "removed_items.csv"), columns, rows)
}

func writePickList(path string, picks []core.ReconciledRow) error {
	columns := []string{"tcgplayer_id", "set_name", "pull_quantity"}
	rows := make([]dataset.Row, len(picks))
	for i, p := range picks {
		rows[i] = dataset.Row{
			"tcgplayer_id":  p.ItemID,
			"set_name":      p.SetName,
			"pull_quantity": fmt.Sprintf("%d", p.AdjustedQty),
		}
	}
	return dataset.WriteCSV(path, columns, rows)
}
