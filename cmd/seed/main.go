package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/logging"
	"bookstore/internal/platform/database"

	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 100, "Number of books to insert")
	flag.Parse()

	if err := run(*count); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(count int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	var repo book.Repository
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		sqlDB, err := database.OpenSQLite(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		repo = book.NewSQLiteRepo(sqlDB, cfg.Database.Timeout)
	default:
		pool, err := database.OpenPostgres(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = book.NewPostgresRepo(pool, cfg.Database.Timeout)
	}

	logger.Info("generating books", zap.Int("count", count))
	service := book.NewService(repo, logger)
	stored := 0
	for i := 0; i < count; i++ {
		if service.AddBook(ctx, randomBook(i)) {
			stored++
		}
		if (i+1)%1000 == 0 {
			logger.Info("progress", zap.Int("done", i+1), zap.Int("total", count))
		}
	}

	books, err := service.FetchBooks(ctx)
	if err != nil {
		return err
	}
	logger.Info("seed finished", zap.Int("stored", stored), zap.Int("total_in_db", len(books)))
	return nil
}

var (
	authors = []string{"Penguin Staff", "A. Writer", "J. Doe", "M. Curie", "L. Tolstoy", "V. Woolf", "U. Le Guin", "T. Morrison"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func randomBook(i int) book.Book {
	b, _ := book.DecodeForm(map[string][]string{
		"title":  {fmt.Sprintf("Book Title %d - %s", i+1, words[rand.Intn(len(words))])},
		"author": {authors[rand.Intn(len(authors))]},
		"price":  {fmt.Sprintf("%.2f", 5+rand.Float64()*45)},
	})
	return b
}
