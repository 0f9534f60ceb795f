package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"rental-miner/config"
	"rental-miner/loader"
	"rental-miner/miner"
	"rental-miner/models"
	"rental-miner/services"
	"rental-miner/storage"
	"rental-miner/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Rental Listing Association Miner starting ===")
	logger.Info("Config — minSupport: %.3f | minLift: %.2f | maxLength: %d | bins: %d | workers: %d",
		cfg.MinSupport, cfg.MinLift, cfg.MaxItemsetLength, cfg.BinCount, cfg.MaxConcurrency)

	// Stage 1: load the dataset. A missing required column is fatal.
	rawRecords, err := loader.New(logger).Load(cfg.CSVInputPath)
	if err != nil {
		var schemaErr *loader.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Error("Dataset schema invalid: %v", schemaErr)
		} else {
			logger.Error("Failed to load dataset: %v", err)
		}
		os.Exit(1)
	}

	// Stage 2: clean and coerce. Rows failing numeric coercion are dropped.
	preparer := services.NewPreparer(logger)
	prepared := preparer.Prepare(rawRecords)
	if len(prepared) == 0 {
		logger.Error("All rows were dropped during preparation. Exiting.")
		os.Exit(1)
	}

	// Optional persistence: keep the prepared listings in PostgreSQL and
	// mine from the stored copy. Failures degrade to in-memory operation.
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), retry)
	if err != nil {
		logger.Warn("PostgreSQL unavailable (%v) — continuing in-memory", err)
		pgWriter = nil
	} else {
		defer pgWriter.Close()
		if err := pgWriter.WriteListings(prepared); err != nil {
			logger.Warn("Failed to store listings: %v", err)
		} else if stored, err := pgWriter.FetchListings(); err != nil {
			logger.Warn("Failed to read listings back: %v", err)
		} else {
			logger.Info("Prepared listings stored in PostgreSQL (table: listings)")
			prepared = stored
		}
	}

	// Stage 3: discretize continuous columns into labeled bins.
	discretizer := services.NewDiscretizer(cfg.CutPoints(), logger)
	labeled := discretizer.Label(prepared)

	// Stage 4: encode each listing as a transaction.
	encoder := services.NewEncoder(cfg.MaxConcurrency, logger)
	transactions := encoder.EncodeAll(labeled)

	// Stage 5: mine frequent itemsets.
	apriori := miner.New(miner.Config{
		MinSupport: cfg.MinSupport,
		MaxLength:  cfg.MaxItemsetLength,
		Workers:    cfg.MaxConcurrency,
	}, logger)
	result := apriori.Mine(transactions)

	// Stage 6: derive, filter, and rank association rules.
	ruleSvc := services.NewRuleService(cfg.MinLift, logger)
	candidates := ruleSvc.Generate(result)
	ranking := ruleSvc.Rank(candidates)

	// Stage 7: export and report.
	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		defer csvWriter.Close()
		if err := csvWriter.WriteRules(ranking.All()); err != nil {
			logger.Error("CSV export failed: %v", err)
		} else {
			logger.Info("Ranked rules exported to %s", cfg.CSVOutputPath)
		}
	}

	if pgWriter != nil {
		if err := pgWriter.WriteRules(ranking.All()); err != nil {
			logger.Warn("Failed to store rules: %v", err)
		} else {
			logger.Info("Ranked rules stored in PostgreSQL (table: association_rules)")
		}
	}

	stats := models.MiningStats{
		RawRows:          len(rawRecords),
		PreparedRows:     len(prepared),
		Transactions:     len(transactions),
		DistinctItems:    encoder.DistinctItems(),
		FrequentItemsets: len(result.Itemsets),
		CandidateRules:   len(candidates),
		RankedRules:      ranking.Len(),
	}
	services.NewReportService(logger).Print(stats, ranking,
		cfg.TargetItems, cfg.TopRules, cfg.TopTargetRules)

	fmt.Printf("  Done. Rules → %s | Postgres tables: listings, association_rules\n\n",
		cfg.CSVOutputPath)
}
