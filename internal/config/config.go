package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	OverpassURL string   `mapstructure:"OVERPASS_URL"`
	UserAgent   string   `mapstructure:"USER_AGENT"`
	CountryISO  string   `mapstructure:"COUNTRY_ISO"`
	CountryName string   `mapstructure:"COUNTRY_NAME"`
	PlaceTypes  []string `mapstructure:"PLACE_TYPES"`
	// QueryTimeout is the server-side Overpass timeout in seconds
	QueryTimeout int `mapstructure:"QUERY_TIMEOUT"`

	RawPath     string `mapstructure:"RAW_PATH"`
	CitiesPath  string `mapstructure:"CITIES_PATH"`
	BoardPath   string `mapstructure:"BOARD_PATH"`
	GeoJSONPath string `mapstructure:"GEOJSON_PATH"`
	PBFPath     string `mapstructure:"PBF_PATH"`

	ReferenceLongitude float64 `mapstructure:"REFERENCE_LONGITUDE"`
	ReferenceCities    string  `mapstructure:"REFERENCE_CITIES"`
	TargetCity         string  `mapstructure:"TARGET_CITY"`

	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("USER_AGENT", "personal_geoquizz_game")
	v.SetDefault("COUNTRY_ISO", "BE")
	v.SetDefault("COUNTRY_NAME", "Belgium")
	v.SetDefault("PLACE_TYPES", []string{"city", "town"})
	v.SetDefault("QUERY_TIMEOUT", 180)

	v.SetDefault("RAW_PATH", "database/belgium_cities.json")
	v.SetDefault("CITIES_PATH", "database/cities.json")
	v.SetDefault("BOARD_PATH", "database/board_cities.json")
	v.SetDefault("GEOJSON_PATH", "")
	v.SetDefault("PBF_PATH", "")

	v.SetDefault("REFERENCE_LONGITUDE", 4.5)
	v.SetDefault("REFERENCE_CITIES", DefaultReferenceCities)
	v.SetDefault("TARGET_CITY", "Soignies")

	// every key needs a default or AutomaticEnv never reaches it on Unmarshal
	v.SetDefault("DB_URL", "")
	v.SetDefault("REDIS_URL", "")

	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_BUCKET", "geoquiz")
	v.SetDefault("S3_REGION", "us-east-1")
}

// LoadConfig reads .env.<APP_ENV> from the working directory, then environment
// variables, then any values already set on v (e.g. bound flags).
func LoadConfig(v *viper.Viper) (c Config, err error) {
	if v == nil {
		v = viper.GetViper()
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	setDefaults(v)

	v.SetConfigName(fmt.Sprintf(".env.%s", env))
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
