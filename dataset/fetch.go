package dataset

import (
	"archive/tar"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"

	"github.com/YuminosukeSato/edago/pkg/errors"
	edagolog "github.com/YuminosukeSato/edago/pkg/log"
)

// Fetcher downloads and caches remote dataset archives.
//
// The zero value is not usable; construct with NewFetcher.
type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	expected digest.Digest
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *slog.Logger) FetchOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithExpectedDigest enables integrity checking of the archive.
//
// By default the mere existence of the cache file marks it valid, so a
// partial or corrupt download is trusted forever. With an expected digest
// set, both freshly downloaded archives and pre-existing cache files are
// verified before use.
func WithExpectedDigest(d digest.Digest) FetchOption {
	return func(f *Fetcher) {
		f.expected = d
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client: http.DefaultClient,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// EnsureLocalDataset guarantees that the decompressed tabular file for the
// archive at remoteURL exists locally and returns its path.
//
// If cachePath already exists as a file the network fetch and the
// extraction are skipped entirely and the tabular file is located under
// extractDir. Otherwise the archive is downloaded to cachePath, creating
// missing parent directories, and its contents are extracted into
// extractDir.
//
// A second call after a successful first call performs no network I/O.
// There is no retry, backoff or partial-download recovery.
func (f *Fetcher) EnsureLocalDataset(ctx context.Context, remoteURL, cachePath, extractDir string) (string, error) {
	if info, err := os.Stat(cachePath); err == nil && info.Mode().IsRegular() {
		f.logger.Debug("dataset archive cached, skipping fetch",
			slog.String(edagolog.CachePathKey, cachePath),
			slog.Bool(edagolog.CacheHitKey, true),
		)
		if f.expected != "" {
			if err := f.verifyArchive(cachePath); err != nil {
				return "", err
			}
		}
		return findTableFile(cachePath, extractDir)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return "", errors.NewFilesystemError("mkdir", filepath.Dir(cachePath), err)
	}

	if err := f.download(ctx, remoteURL, cachePath); err != nil {
		return "", err
	}
	f.logger.Info("dataset archive downloaded",
		slog.String(edagolog.URLKey, remoteURL),
		slog.String(edagolog.CachePathKey, cachePath),
		slog.Bool(edagolog.CacheHitKey, false),
	)

	tablePath, err := extractTarGz(cachePath, extractDir)
	if err != nil {
		return "", err
	}
	f.logger.Debug("dataset archive extracted",
		slog.String(edagolog.TablePathKey, tablePath),
	)
	return tablePath, nil
}

// download fetches remoteURL into cachePath, verifying the digest when one
// is configured. A failed verification removes the file so the next run
// does not trust a poisoned cache.
func (f *Fetcher) download(ctx context.Context, remoteURL, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return errors.NewNetworkError(remoteURL, "", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.NewNetworkError(remoteURL, "", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewNetworkError(remoteURL, resp.Status, nil)
	}

	out, err := os.Create(cachePath)
	if err != nil {
		return errors.NewFilesystemError("create", cachePath, err)
	}

	var body io.Reader = resp.Body
	var verifier digest.Verifier
	if f.expected != "" {
		verifier = f.expected.Verifier()
		body = io.TeeReader(resp.Body, verifier)
	}

	if _, err := io.Copy(out, body); err != nil {
		_ = out.Close()
		_ = os.Remove(cachePath)
		return errors.NewNetworkError(remoteURL, "", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(cachePath)
		return errors.NewFilesystemError("write", cachePath, err)
	}

	if verifier != nil && !verifier.Verified() {
		_ = os.Remove(cachePath)
		return errors.NewExtractionError(cachePath, "", errors.Newf("archive digest does not match %s", f.expected))
	}
	return nil
}

// verifyArchive checks an already-cached archive against the expected digest.
func (f *Fetcher) verifyArchive(cachePath string) error {
	in, err := os.Open(cachePath)
	if err != nil {
		return errors.NewFilesystemError("open", cachePath, err)
	}
	defer in.Close()

	actual, err := f.expected.Algorithm().FromReader(in)
	if err != nil {
		return errors.NewFilesystemError("read", cachePath, err)
	}
	if actual != f.expected {
		return errors.NewExtractionError(cachePath, "", errors.Newf("cached archive digest %s does not match %s", actual, f.expected))
	}
	return nil
}

// extractTarGz decompresses a gzipped tarball into extractDir and returns
// the path of the first .csv entry it wrote.
func extractTarGz(archivePath, extractDir string) (string, error) {
	in, err := os.Open(archivePath)
	if err != nil {
		return "", errors.NewExtractionError(archivePath, "", err)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", errors.NewExtractionError(archivePath, "", err)
	}
	defer gz.Close()

	tablePath := ""
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewExtractionError(archivePath, "", err)
		}

		target, err := sanitizeEntry(extractDir, hdr.Name)
		if err != nil {
			return "", errors.NewExtractionError(archivePath, hdr.Name, err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", errors.NewExtractionError(archivePath, hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", errors.NewExtractionError(archivePath, hdr.Name, err)
			}
			out, err := os.Create(target)
			if err != nil {
				return "", errors.NewExtractionError(archivePath, hdr.Name, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				_ = out.Close()
				return "", errors.NewExtractionError(archivePath, hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return "", errors.NewExtractionError(archivePath, hdr.Name, err)
			}
			if tablePath == "" && strings.EqualFold(filepath.Ext(target), ".csv") {
				tablePath = target
			}
		default:
			// Symlinks and other special entries are not expected in
			// dataset archives; skip them rather than fail.
		}
	}

	if tablePath == "" {
		return "", errors.NewExtractionError(archivePath, "", errors.New("archive contains no .csv entry"))
	}
	return tablePath, nil
}

// sanitizeEntry resolves an archive entry name under dir, rejecting
// absolute paths and traversal outside dir.
func sanitizeEntry(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errors.Newf("absolute entry path %q", name)
	}
	target := filepath.Join(dir, filepath.Clean(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf("entry path %q escapes extraction directory", name)
	}
	return target, nil
}

// findTableFile locates the extracted .csv for a cache hit, where the
// extraction step is skipped entirely. Walk order is lexical, so repeated
// calls return the same path a fresh run would have produced.
func findTableFile(archivePath, extractDir string) (string, error) {
	tablePath := ""
	err := filepath.WalkDir(extractDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if tablePath == "" && d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ".csv") {
			tablePath = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", errors.NewExtractionError(archivePath, "", err)
	}
	if tablePath == "" {
		return "", errors.NewExtractionError(archivePath, "", errors.Newf("no .csv found under %s for cached archive", extractDir))
	}
	return tablePath, nil
}
