package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"estate_catalog/internal/adapters/observability"
	"estate_catalog/internal/catalog"
	"estate_catalog/internal/domain"
	"estate_catalog/internal/shared"
	mysqlrepo "estate_catalog/internal/storage/mysql"
)

// seedRecord is one property in the seed file. Coordinates come in as
// numbers and are formatted into the decimal strings storage expects.
type seedRecord struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Address      string  `json:"address"`
	District     string  `json:"district"`
	City         string  `json:"city"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Description  *string `json:"description"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder int     `json:"display_order"`
}

func main() {
	seedPath := flag.String("seed", "seed.json", "path to the JSON seed file")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().Str("seed", *seedPath).Int("workers", cfg.Workers).Msg("importer starting")

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cmds := catalog.NewCommandService(repo, nil, nil)

	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, rec := range records {
		rec := rec

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			p := domain.Property{
				ID:           rec.ID,
				Title:        rec.Title,
				Slug:         rec.Slug,
				Type:         rec.Type,
				Status:       rec.Status,
				Address:      rec.Address,
				District:     rec.District,
				City:         rec.City,
				Lat:          strconv.FormatFloat(rec.Lat, 'f', 7, 64),
				Lng:          strconv.FormatFloat(rec.Lng, 'f', 7, 64),
				Description:  rec.Description,
				IsActive:     rec.IsActive,
				DisplayOrder: rec.DisplayOrder,
			}
			if _, err := cmds.CreateProperty(ctx, p); err != nil {
				log.Warn().Str("slug", rec.Slug).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("slug", rec.Slug).Msg("import ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
