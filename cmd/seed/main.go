package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/serviguard/roster/backend/internal/config"
	"github.com/serviguard/roster/backend/internal/repository"
	"github.com/serviguard/roster/backend/internal/seed"
	"github.com/serviguard/roster/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var organizationID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random guards, 2: insert demo installations and posts)")
	flag.IntVar(&n, "n", 0, "number of records to insert (defaults to SEED_GUARDS)")
	flag.Int64Var(&organizationID, "org", 1, "organization to seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// database pool
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			n = cfg.Seed.Guards
		}

		cnt := n
		for i := 0; i < n; i++ {
			guard := utils.GenerateRandomGuard(cfg.Seed.EmailDomain)
			guard.OrganizationID = organizationID

			if err := repo.CreateGuard(guard); err != nil {
				slog.Error("could not insert guard", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("guards inserted", slog.Int("count", n-cnt))
	case 2:
		seed.SeedDemoData(repo, organizationID)
	default:
		slog.Error("unknown operation")
	}
}
