package dataset

import (
	"archive/tar"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

const sampleCSV = "a,b\n1,2\n3,4\n"

// buildTarGz assembles a gzipped tarball from name -> content pairs.
func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func archiveServer(t *testing.T, body []byte, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureLocalDatasetFreshFetch(t *testing.T) {
	body := buildTarGz(t, map[string]string{"housing/housing.csv": sampleCSV})
	var hits atomic.Int64
	srv := archiveServer(t, body, &hits)

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "data", "housing.tgz")
	extractDir := filepath.Join(dir, "data")

	f := NewFetcher()
	tablePath, err := f.EnsureLocalDataset(context.Background(), srv.URL, cachePath, extractDir)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "exactly one fetch on a fresh environment")
	assert.FileExists(t, cachePath, "cache marker must exist after the first run")
	assert.Equal(t, filepath.Join(extractDir, "housing", "housing.csv"), tablePath)

	content, err := os.ReadFile(tablePath)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(content))
}

func TestEnsureLocalDatasetIdempotent(t *testing.T) {
	body := buildTarGz(t, map[string]string{"housing/housing.csv": sampleCSV})
	var hits atomic.Int64
	srv := archiveServer(t, body, &hits)

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "data", "housing.tgz")
	extractDir := filepath.Join(dir, "data")

	f := NewFetcher()
	first, err := f.EnsureLocalDataset(context.Background(), srv.URL, cachePath, extractDir)
	require.NoError(t, err)

	second, err := f.EnsureLocalDataset(context.Background(), srv.URL, cachePath, extractDir)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second call must perform no network I/O")
	assert.Equal(t, first, second, "cache hit must return the same table path")
}

func TestEnsureLocalDatasetCacheHitWithoutServer(t *testing.T) {
	// A pre-existing cache file must short-circuit before any network use;
	// the remote URL does not even have to be reachable.
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "data", "housing.tgz")
	extractDir := filepath.Join(dir, "data")

	require.NoError(t, os.MkdirAll(filepath.Join(extractDir, "housing"), 0o755))
	require.NoError(t, os.WriteFile(cachePath, []byte("opaque archive bytes"), 0o644))
	csvPath := filepath.Join(extractDir, "housing", "housing.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	f := NewFetcher()
	tablePath, err := f.EnsureLocalDataset(context.Background(), "http://127.0.0.1:0/unreachable", cachePath, extractDir)
	require.NoError(t, err)
	assert.Equal(t, csvPath, tablePath)
}

func TestEnsureLocalDatasetHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	f := NewFetcher()
	_, err := f.EnsureLocalDataset(context.Background(), srv.URL, filepath.Join(dir, "housing.tgz"), dir)
	require.Error(t, err)

	var netErr *errors.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, netErr.Status, "404")
}

func TestEnsureLocalDatasetUnreachableHost(t *testing.T) {
	dir := t.TempDir()
	f := NewFetcher()
	_, err := f.EnsureLocalDataset(context.Background(), "http://127.0.0.1:0/down", filepath.Join(dir, "housing.tgz"), dir)
	require.Error(t, err)

	var netErr *errors.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestEnsureLocalDatasetCorruptArchive(t *testing.T) {
	var hits atomic.Int64
	srv := archiveServer(t, []byte("this is not a gzip stream"), &hits)

	dir := t.TempDir()
	f := NewFetcher()
	_, err := f.EnsureLocalDataset(context.Background(), srv.URL, filepath.Join(dir, "housing.tgz"), dir)
	require.Error(t, err)

	var extErr *errors.ExtractionError
	assert.True(t, errors.As(err, &extErr))
}

func TestEnsureLocalDatasetMkdirDenied(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a parent directory is needed makes MkdirAll
	// fail regardless of permissions.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	f := NewFetcher()
	_, err := f.EnsureLocalDataset(context.Background(), "http://example.invalid/a.tgz",
		filepath.Join(blocker, "data", "housing.tgz"), dir)
	require.Error(t, err)

	var fsErr *errors.FilesystemError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "mkdir", fsErr.Op)
}

func TestEnsureLocalDatasetPathTraversal(t *testing.T) {
	body := buildTarGz(t, map[string]string{"../evil.csv": sampleCSV})
	var hits atomic.Int64
	srv := archiveServer(t, body, &hits)

	dir := t.TempDir()
	extractDir := filepath.Join(dir, "data")
	f := NewFetcher()
	_, err := f.EnsureLocalDataset(context.Background(), srv.URL, filepath.Join(extractDir, "housing.tgz"), extractDir)
	require.Error(t, err)

	var extErr *errors.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.NoFileExists(t, filepath.Join(dir, "evil.csv"))
}

func TestEnsureLocalDatasetDigestVerification(t *testing.T) {
	body := buildTarGz(t, map[string]string{"housing/housing.csv": sampleCSV})
	var hits atomic.Int64
	srv := archiveServer(t, body, &hits)

	t.Run("matching digest", func(t *testing.T) {
		dir := t.TempDir()
		f := NewFetcher(WithExpectedDigest(digest.FromBytes(body)))
		_, err := f.EnsureLocalDataset(context.Background(), srv.URL, filepath.Join(dir, "housing.tgz"), dir)
		assert.NoError(t, err)
	})

	t.Run("mismatched digest removes the poisoned cache", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "housing.tgz")
		f := NewFetcher(WithExpectedDigest(digest.FromString("something else")))
		_, err := f.EnsureLocalDataset(context.Background(), srv.URL, cachePath, dir)
		require.Error(t, err)

		var extErr *errors.ExtractionError
		assert.True(t, errors.As(err, &extErr))
		assert.NoFileExists(t, cachePath)
	})

	t.Run("mismatched digest on an existing cache file", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "housing.tgz")
		require.NoError(t, os.WriteFile(cachePath, []byte("partial download"), 0o644))

		before := hits.Load()
		f := NewFetcher(WithExpectedDigest(digest.FromBytes(body)))
		_, err := f.EnsureLocalDataset(context.Background(), srv.URL, cachePath, dir)
		require.Error(t, err)

		var extErr *errors.ExtractionError
		assert.True(t, errors.As(err, &extErr))
		assert.Equal(t, before, hits.Load(), "existing cache is not refetched, only rejected")
	})
}
