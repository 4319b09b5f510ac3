package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"geoquiz/internal/config"
	"geoquiz/internal/dataset"
	"geoquiz/internal/geojson"
	"geoquiz/internal/model"
	"geoquiz/internal/postgres"
	"geoquiz/internal/projection"
	"geoquiz/internal/redis"
	"geoquiz/internal/service/filter"
	"geoquiz/internal/service/overpass"
	"geoquiz/internal/service/pbf"
	"geoquiz/internal/service/projector"
	"geoquiz/internal/service/quiz"
	cityindex "geoquiz/internal/service/storage"
	"geoquiz/internal/storage"
	"geoquiz/internal/util"

	"github.com/paulmach/orb"
)

func runFetch(ctx context.Context, cfg config.Config, opts *options) error {
	query := overpass.BuildQuery(overpass.QueryOptions{
		CountryISO: cfg.CountryISO,
		PlaceTypes: cfg.PlaceTypes,
		Timeout:    cfg.QueryTimeout,
	})

	client := overpass.NewClient(cfg.OverpassURL, cfg.UserAgent)

	if cfg.RedisUrl != "" && !opts.noCache {
		rc, err := redis.Connect(ctx, cfg.RedisUrl)
		if err != nil {
			log.Printf("Payload cache disabled: %v", err)
		} else {
			cache := redis.NewPayloadCache(rc, config.RawPayloadTTL)
			defer cache.Close()
			client.WithCache(cache, redis.Key)
			if opts.refresh {
				if err := client.Invalidate(ctx, query); err != nil {
					log.Printf("Failed to drop cached payload: %v", err)
				}
			}
		}
	}

	_, err := client.FetchToFile(ctx, query, cfg.CountryName, cfg.RawPath)
	return err
}

func runExtract(ctx context.Context, cfg config.Config, _ *options) error {
	if cfg.PBFPath == "" {
		return errors.New("no .osm.pbf input, set --pbf or PBF_PATH")
	}
	n, err := pbf.ExtractFile(ctx, cfg.PBFPath, cfg.RawPath, cfg.PlaceTypes)
	if err != nil {
		return err
	}
	log.Printf("Found %d city nodes in %s", n, cfg.PBFPath)
	return nil
}

func runFilter(_ context.Context, cfg config.Config, _ *options) error {
	cities, err := filter.Run(cfg.RawPath, cfg.CitiesPath)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d cities to %s", len(cities), cfg.CitiesPath)

	idx := cityindex.NewNameIndex(cities)
	log.Printf("%d distinct board names", idx.Len())
	if dups := idx.Duplicates(); len(dups) > 0 {
		log.Printf("Ambiguous names, not usable as target or reference: %s", strings.Join(dups, ", "))
	}
	return nil
}

func runProject(ctx context.Context, cfg config.Config, opts *options) error {
	cities, refs, err := loadInputs(ctx, cfg, opts)
	if err != nil {
		return err
	}

	res, err := projector.Project(cities, cfg.ReferenceLongitude, refs, cfg.TargetCity)
	if err != nil {
		return err
	}
	res.Print(os.Stdout)
	return nil
}

func runBoard(ctx context.Context, cfg config.Config, opts *options) error {
	cities, refs, err := loadInputs(ctx, cfg, opts)
	if err != nil {
		return err
	}

	cal, err := projector.CalibrateDataset(cities, cfg.ReferenceLongitude, refs)
	if err != nil {
		return err
	}

	board, err := projector.ProjectAll(cities, cal.Transform)
	if err != nil {
		return err
	}
	if err := dataset.WriteJSON(cfg.BoardPath, board); err != nil {
		return err
	}
	log.Printf("Wrote %d board cities to %s", len(board), cfg.BoardPath)

	b := geojson.BoardBound(board)
	log.Printf("Board extent: x %.1f..%.1f, y %.1f..%.1f", b.Min[0], b.Max[0], b.Min[1], b.Max[1])

	if cfg.GeoJSONPath != "" {
		return geojson.Export(cfg.GeoJSONPath, board, refs, cal.Transform)
	}
	return nil
}

func runCentroid(_ context.Context, cfg config.Config, _ *options) error {
	cities, err := dataset.LoadCities(cfg.CitiesPath)
	if err != nil {
		return err
	}
	lat, lon, err := projector.Centroid(cities)
	if err != nil {
		return err
	}
	fmt.Printf("lat0 = %v\n", lat)
	fmt.Printf("lon0 = %v\n", lon)
	return nil
}

func runScore(ctx context.Context, cfg config.Config, opts *options) error {
	if opts.answer == "" {
		return errors.New("no answer city, set --answer")
	}

	cities, refs, err := loadInputs(ctx, cfg, opts)
	if err != nil {
		return err
	}
	cal, err := projector.CalibrateDataset(cities, cfg.ReferenceLongitude, refs)
	if err != nil {
		return err
	}
	placed, err := projector.ProjectAll(cities, cal.Transform)
	if err != nil {
		return err
	}
	board := quiz.NewBoard(placed, cal.Transform)

	switch {
	case opts.guessName != "":
		answer, err := board.City(opts.answer)
		if err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		fmt.Printf("The City Name is %s\n", opts.guessName)
		fmt.Printf("%v points\n", quiz.ScoreName(opts.guessName, answer))
	case opts.guessSet:
		fmt.Printf("Located at (%v,%v)\n", opts.guessX, opts.guessY)
		out, err := board.GuessLocation(opts.answer, orb.Point{opts.guessX, opts.guessY})
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		return errors.New("no guess, set --name or --x/--y")
	}
	return nil
}

func runSyncDB(ctx context.Context, cfg config.Config, _ *options) error {
	if cfg.DBUrl == "" {
		return errors.New("no database, set --db-url or DB_URL")
	}

	cities, refs, err := loadInputs(ctx, cfg, &options{})
	if err != nil {
		return err
	}

	var tr *projection.BoardTransform
	if cal, err := projector.CalibrateDataset(cities, cfg.ReferenceLongitude, refs); err != nil {
		log.Printf("Storing cities without board coordinates: %v", err)
	} else {
		tr = &cal.Transform
	}

	snapshot := util.ShortUUID()
	rows, err := postgres.ToCityPG(snapshot, cities, tr)
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer postgres.Close(db)

	if err := postgres.NewCityRepository(db).SaveSnapshot(ctx, rows); err != nil {
		return err
	}
	log.Printf("Stored %d cities as snapshot %s", len(rows), snapshot)
	return nil
}

func runPublish(ctx context.Context, cfg config.Config, opts *options) error {
	s3, err := storage.NewS3Service(storage.S3Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
	})
	if err != nil {
		return err
	}

	keys, err := s3.Publish(ctx, opts.prefix, cfg.RawPath, cfg.CitiesPath, cfg.BoardPath, cfg.GeoJSONPath)
	if err != nil {
		return err
	}
	log.Printf("Published %d files", len(keys))
	return nil
}

// loadInputs reads the reference table and the cities dataset, from the
// cities file or from a database snapshot when --snapshot is set.
func loadInputs(ctx context.Context, cfg config.Config, opts *options) ([]model.CityRecord, []model.ReferenceCity, error) {
	refs, err := config.ParseReferenceCities(cfg.ReferenceCities)
	if err != nil {
		return nil, nil, err
	}

	var cities []model.CityRecord
	if opts.snapshot != "" {
		cities, err = loadSnapshot(ctx, cfg, opts.snapshot)
	} else {
		cities, err = dataset.LoadCities(cfg.CitiesPath)
	}
	if err != nil {
		return nil, nil, err
	}
	return cities, refs, nil
}

func loadSnapshot(ctx context.Context, cfg config.Config, snapshot string) ([]model.CityRecord, error) {
	if cfg.DBUrl == "" {
		return nil, errors.New("no database for --snapshot, set --db-url or DB_URL")
	}

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	defer postgres.Close(db)

	repo := postgres.NewCityRepository(db)
	if snapshot == "latest" {
		ids, err := repo.Snapshots(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no stored snapshot: %w", dataset.ErrEmptyDataset)
		}
		snapshot = ids[0]
	}

	cities, err := repo.LoadSnapshot(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", snapshot, dataset.ErrEmptyDataset)
	}
	log.Printf("Loaded %d cities from snapshot %s", len(cities), snapshot)
	return cities, nil
}
