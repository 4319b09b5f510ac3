package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "datasets/belgium/cities.json", ObjectKey("datasets/Belgium", "database/cities.json"))
	assert.Equal(t, "my-run/board.geojson", ObjectKey("My Run", "/tmp/out/board.geojson"))
	assert.Equal(t, "cities.json", ObjectKey("", "cities.json"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("a/cities.json"))
	assert.Equal(t, "application/geo+json", contentType("board.GEOJSON"))
	assert.Equal(t, "application/octet-stream", contentType("raw.pbf"))
}

func TestNewS3Service(t *testing.T) {
	_, err := NewS3Service(S3Options{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	_, err = NewS3Service(S3Options{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	s, err := NewS3Service(S3Options{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "geoquiz"})
	require.NoError(t, err)
	assert.Equal(t, "geoquiz", s.bucket)
}
