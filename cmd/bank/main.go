package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/api-sage/card-banking-system/internal/adapter/repository/implementations"
	"github.com/api-sage/card-banking-system/internal/adapter/repository/memory"
	"github.com/api-sage/card-banking-system/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/card-banking-system/internal/adapter/terminal"
	"github.com/api-sage/card-banking-system/internal/config"
	"github.com/api-sage/card-banking-system/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var cardRepo repo_interfaces.CardRepository
	var transferRepo repo_interfaces.TransferRepository

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		cards := memory.NewCardRepository()
		cardRepo = cards
		transferRepo = memory.NewTransferRepository(cards)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := implementations.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			cancel()
			log.Fatalf("connect to store: %v", err)
		}
		if err := implementations.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()
		defer db.Close()

		cardRepo = implementations.NewCardRepository(db)
		transferRepo = implementations.NewTransferRepository(db)
	}

	cardService := services.NewCardService(cardRepo, cfg.IssuerIIN)
	authService := services.NewAuthService(cardRepo, cfg.IssuerIIN)
	transactionService := services.NewTransactionService(cardRepo, transferRepo, cfg.IssuerIIN)

	term := terminal.New(os.Stdin, os.Stdout, cardService, authService, transactionService)
	if err := term.Run(context.Background()); err != nil {
		log.Fatalf("terminal session: %v", err)
	}
}
