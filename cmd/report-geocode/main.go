// Command report-geocode backfills coordinates on stored reports that were
// submitted with a manually typed address and no fix. It resolves each
// address through the autocomplete provider and writes the resulting
// geometry back.
package main

import (
	"context"
	"strings"
	"time"

	"outage_portal_backend/internal/places"
	"outage_portal_backend/internal/report"
	"outage_portal_backend/platform/config"
	"outage_portal_backend/platform/db"
	"outage_portal_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting report geocode backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := report.NewRepository(pool)
	client := places.NewClient(cfg, log)
	tokens := places.NewSessionTokenManager()

	const batchSize = 25
	for {
		reports, err := repo.ListMissingCoordinates(ctx, batchSize)
		if err != nil {
			log.Error("failed to list reports", "error", err)
			return
		}
		if len(reports) == 0 {
			log.Info("no reports left to geocode")
			return
		}

		progress := false

		for _, rep := range reports {
			address := backfillQuery(rep)
			if address == "" {
				log.Info("skipping report without address", "reportId", rep.ID)
				continue
			}

			lat, lng, ok := resolveCoordinates(ctx, client, tokens, address, log)
			if !ok {
				log.Info("no geocode result", "reportId", rep.ID, "address", address)
				time.Sleep(time.Second)
				continue
			}

			if err := repo.UpdateCoordinates(ctx, rep.ID, lat, lng); err != nil {
				log.Error("failed to update report", "reportId", rep.ID, "error", err)
				time.Sleep(time.Second)
				continue
			}

			log.Info("report geocoded", "reportId", rep.ID, "lat", lat, "lng", lng)
			progress = true
			time.Sleep(time.Second)
		}

		if !progress {
			log.Info("no geocode progress in batch, stopping")
			return
		}
	}
}

// backfillQuery builds the search string for a report's stored address.
func backfillQuery(rep report.Report) string {
	if rep.Address != "" {
		return rep.Address
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{rep.Locality, rep.City, rep.State, rep.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// resolveCoordinates runs one suggest-then-details session for the address.
func resolveCoordinates(ctx context.Context, client *places.Client, tokens *places.SessionTokenManager, address string, log *logger.Logger) (float64, float64, bool) {
	token := tokens.Current()
	predictions, err := client.Suggest(ctx, address, token)
	if err != nil {
		log.Error("suggest failed", "address", address, "error", err)
		return 0, 0, false
	}
	if len(predictions) == 0 {
		return 0, 0, false
	}

	details, err := client.Details(ctx, predictions[0].PlaceID, token)
	tokens.Reset()
	if err != nil {
		log.Error("details failed", "placeId", predictions[0].PlaceID, "error", err)
		return 0, 0, false
	}
	if details.Lat == nil || details.Lng == nil {
		return 0, 0, false
	}
	return *details.Lat, *details.Lng, true
}
