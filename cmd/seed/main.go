package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		extra int
		seed  uint64
	)
	flag.IntVar(&extra, "extra", 0, "Number of additional fake customers to create")
	flag.Uint64Var(&seed, "seed", 0, "Seed for fake data (0 picks a random seed)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	mutations := crm.NewMutationService(persistence.NewGormTransactionScope(db.DB), crm.WithLogger(log))

	log.Info("Seeding database...")
	if err := NewSeeder(db.DB, mutations, seed, log).Run(ctx, extra); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	customers, products, orders := persistence.NewCRMRepositories(db.DB)
	summary, err := crm.NewQueryService(customers, products, orders).Summary(ctx)
	if err != nil {
		log.Fatal("Failed to read summary", zap.Error(err))
	}
	log.Info("Seeding complete",
		zap.Int64("customers", summary.TotalCustomers),
		zap.Int64("orders", summary.TotalOrders),
		zap.String("revenue", summary.TotalRevenue.StringFixed(2)),
	)
}
