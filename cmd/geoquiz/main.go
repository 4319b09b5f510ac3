package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"geoquiz/internal/config"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type command struct {
	help string
	run  func(ctx context.Context, cfg config.Config, opts *options) error
}

var commands = map[string]command{
	"fetch":    {"download city nodes from Overpass into the raw file", runFetch},
	"extract":  {"extract city nodes from a local .osm.pbf into the raw file", runExtract},
	"filter":   {"reduce the raw file to the cities dataset", runFilter},
	"project":  {"calibrate the board and place the target city", runProject},
	"board":    {"place every city on the board (and export GeoJSON)", runBoard},
	"centroid": {"print the mean latitude and longitude of the dataset", runCentroid},
	"score":    {"score a guess against a city on the board", runScore},
	"sync-db":  {"store the cities dataset in PostgreSQL", runSyncDB},
	"publish":  {"upload generated files to S3-compatible storage", runPublish},
}

// options are flags that do not map to a config key
type options struct {
	noCache   bool
	refresh   bool
	snapshot  string
	prefix    string
	answer    string
	guessName string
	guessX    float64
	guessY    float64
	guessSet  bool
}

func main() {
	flags := pflag.NewFlagSet("geoquiz", pflag.ContinueOnError)
	flags.Usage = func() { usage(flags) }

	opts := &options{}
	v := viper.New()
	bindFlags(flags, v, opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("Invalid arguments: %v", err)
	}
	opts.guessSet = flags.Changed("x") || flags.Changed("y")

	if flags.NArg() != 1 {
		usage(flags)
		os.Exit(2)
	}
	name := flags.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		log.Printf("Unknown command %q", name)
		usage(flags)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, cfg, opts); err != nil {
		log.Fatalf("%s failed: %v", name, err)
	}
}

func bindFlags(flags *pflag.FlagSet, v *viper.Viper, opts *options) {
	flags.String("raw", "", "raw Overpass payload path")
	flags.String("cities", "", "filtered cities dataset path")
	flags.String("board", "", "board cities output path")
	flags.String("geojson", "", "GeoJSON output path (board command)")
	flags.String("pbf", "", ".osm.pbf input path (extract command)")
	flags.String("target", "", "target city name")
	flags.Float64("x0", 0, "reference longitude in degrees")
	flags.String("references", "", "reference table, Name:x:y,Name:x:y")
	flags.String("overpass-url", "", "Overpass interpreter endpoint")
	flags.String("country", "", "ISO3166-1 country code")
	flags.StringSlice("places", nil, "place types to download")
	flags.String("redis-url", "", "Redis URL for the Overpass payload cache")
	flags.String("db-url", "", "PostgreSQL URL")
	flags.String("bucket", "", "S3 bucket")

	keys := map[string]string{
		"raw":          "RAW_PATH",
		"cities":       "CITIES_PATH",
		"board":        "BOARD_PATH",
		"geojson":      "GEOJSON_PATH",
		"pbf":          "PBF_PATH",
		"target":       "TARGET_CITY",
		"x0":           "REFERENCE_LONGITUDE",
		"references":   "REFERENCE_CITIES",
		"overpass-url": "OVERPASS_URL",
		"country":      "COUNTRY_ISO",
		"places":       "PLACE_TYPES",
		"redis-url":    "REDIS_URL",
		"db-url":       "DB_URL",
		"bucket":       "S3_BUCKET",
	}
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("Failed to bind flag %s: %v", flag, err)
		}
	}

	flags.BoolVar(&opts.noCache, "no-cache", false, "bypass the Redis payload cache")
	flags.BoolVar(&opts.refresh, "refresh", false, "drop the cached payload before fetching (fetch command)")
	flags.StringVar(&opts.snapshot, "snapshot", "", "read cities from a stored database snapshot id, or latest")
	flags.StringVar(&opts.prefix, "prefix", "datasets", "object key prefix (publish command)")
	flags.StringVar(&opts.answer, "answer", "", "city to score against (score command)")
	flags.StringVar(&opts.guessName, "name", "", "guessed city name (score command)")
	flags.Float64Var(&opts.guessX, "x", 0, "guessed board x (score command)")
	flags.Float64Var(&opts.guessY, "y", 0, "guessed board y (score command)")
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: geoquiz [flags] <command>\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", name, commands[name].help)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n%s", flags.FlagUsages())
}
