package dataset

import (
	"os"
	"path/filepath"

	ini "github.com/lars-t-hansen/ini"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Config locates the filesystem roots and the remote mirror the
// walkthroughs use. Everything has a working-directory-relative default so
// the examples run without any configuration.
type Config struct {
	// DataDir holds the archive cache and the extracted dataset.
	DataDir string
	// AssetsDir receives rendered plots.
	AssetsDir string
	// RemoteURL overrides the dataset mirror.
	RemoteURL string
}

// DefaultConfig returns the relative-path defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:   "data",
		AssetsDir: "assets",
		RemoteURL: CaliforniaHousingURL,
	}
}

// MT: Constant after initialization
var (
	p              = ini.NewParser()
	pathsSection   = p.AddSection("paths")
	pathsDataDir   = pathsSection.AddString("data-dir")
	pathsAssetsDir = pathsSection.AddString("assets-dir")
	datasetSection = p.AddSection("dataset")
	datasetRemote  = datasetSection.AddString("remote")
)

// LoadConfig reads an ini config file and applies it over the defaults.
// Fields absent from the file keep their default values. Values may use
// environment variable references, which are expanded.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	input, err := os.Open(path)
	if err != nil {
		return cfg, errors.NewFilesystemError("open", path, err)
	}
	defer input.Close()

	store, err := p.Parse(input)
	if err != nil {
		return cfg, errors.NewParseError(path, "", 0, err.Error())
	}

	if pathsDataDir.Present(store) {
		cfg.DataDir = os.ExpandEnv(pathsDataDir.StringVal(store))
	}
	if pathsAssetsDir.Present(store) {
		cfg.AssetsDir = os.ExpandEnv(pathsAssetsDir.StringVal(store))
	}
	if datasetRemote.Present(store) {
		cfg.RemoteURL = os.ExpandEnv(datasetRemote.StringVal(store))
	}
	return cfg, nil
}

// LoadUserConfig reads ~/.edago when it exists, falling back to the
// defaults when it does not.
func LoadUserConfig() Config {
	home := os.Getenv("HOME")
	if home == "" {
		return DefaultConfig()
	}
	path := filepath.Join(filepath.Clean(home), ".edago")
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
