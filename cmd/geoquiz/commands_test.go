package main

import (
	"context"
	"path/filepath"
	"testing"

	"geoquiz/internal/config"
	"geoquiz/internal/dataset"
	"geoquiz/internal/model"
	"geoquiz/internal/projection"
	"geoquiz/internal/service/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawFixture = `{"elements":[
{"type":"node","id":1,"lat":49.7,"lon":5.8,"tags":{"name":"Arlon","name:fr":"Arlon","name:nl":"Aarlen","place":"town"}},
{"type":"node","id":2,"lat":51.2,"lon":2.9,"tags":{"name":"Oostende","name:fr":"Ostende","place":"city"}},
{"type":"node","id":3,"lat":50.579203,"lon":4.0685604,"tags":{"name":"Soignies","name:fr":"Soignies","place":"town"}},
{"type":"node","id":4,"lat":50.88,"lon":4.7,"tags":{"name":"Leuven","place":"city"}}
]}`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		RawPath:            filepath.Join(dir, "raw.json"),
		CitiesPath:         filepath.Join(dir, "cities.json"),
		BoardPath:          filepath.Join(dir, "board.json"),
		GeoJSONPath:        filepath.Join(dir, "board.geojson"),
		ReferenceLongitude: 4.5,
		ReferenceCities:    config.DefaultReferenceCities,
		TargetCity:         "Soignies",
	}
	require.NoError(t, dataset.WriteRaw(cfg.RawPath, []byte(rawFixture)))
	return cfg
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	opts := &options{}

	require.NoError(t, runFilter(ctx, cfg, opts))
	cities, err := dataset.LoadCities(cfg.CitiesPath)
	require.NoError(t, err)
	require.Len(t, cities, 4)

	require.NoError(t, runProject(ctx, cfg, opts))
	require.NoError(t, runCentroid(ctx, cfg, opts))

	require.NoError(t, runBoard(ctx, cfg, opts))
	var board []model.BoardCity
	require.NoError(t, dataset.ReadJSON(cfg.BoardPath, &board))
	require.Len(t, board, 4)
	assert.Equal(t, "Ostende", board[1].Name)
	assert.Equal(t, "Leuven", board[3].Name)
	assert.FileExists(t, cfg.GeoJSONPath)
}

func TestScoreCommand(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, runFilter(ctx, cfg, &options{}))

	assert.NoError(t, runScore(ctx, cfg, &options{answer: "Soignies", guessName: " soignies"}))
	assert.NoError(t, runScore(ctx, cfg, &options{answer: "Soignies", guessX: -80, guessY: 17, guessSet: true}))

	assert.Error(t, runScore(ctx, cfg, &options{answer: "Soignies"}))
	assert.Error(t, runScore(ctx, cfg, &options{}))
	assert.ErrorIs(t, runScore(ctx, cfg, &options{answer: "Atlantis", guessName: "x"}), storage.ErrCityNotFound)
}

func TestScoreCommandAmbiguousAnswer(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, runFilter(ctx, cfg, &options{}))

	cities, err := dataset.LoadCities(cfg.CitiesPath)
	require.NoError(t, err)
	cities = append(cities, model.CityRecord{NameDefault: model.StringPtr("soignies"), Lat: 50.6, Lon: 4.1})
	require.NoError(t, dataset.SaveCities(cfg.CitiesPath, cities))

	err = runScore(ctx, cfg, &options{answer: "Soignies", guessName: "Soignies"})
	assert.ErrorIs(t, err, storage.ErrDuplicateCity)
}

func TestBoardCommandFlatReferenceAxis(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, runFilter(ctx, cfg, &options{}))

	cfg.ReferenceCities = "Arlon:0:-248,Ostende:0:207"
	err := runBoard(ctx, cfg, &options{})
	assert.ErrorIs(t, err, projection.ErrDegenerateCalibration)
	assert.NoFileExists(t, cfg.BoardPath)
	assert.NoFileExists(t, cfg.GeoJSONPath)
}

func TestSnapshotNeedsDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	_, _, err := loadInputs(ctx, cfg, &options{snapshot: "latest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--snapshot")

	assert.Error(t, runProject(ctx, cfg, &options{snapshot: "latest"}))
}

func TestProjectCommandMissingTarget(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, runFilter(ctx, cfg, &options{}))

	cfg.TargetCity = "Bruxelles"
	assert.Error(t, runProject(ctx, cfg, &options{}))
}

func TestCommandsRequireSettings(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	assert.Error(t, runExtract(ctx, cfg, &options{}))
	assert.Error(t, runSyncDB(ctx, cfg, &options{}))
	assert.Error(t, runPublish(ctx, cfg, &options{}))
}
