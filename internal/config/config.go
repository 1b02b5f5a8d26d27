// Package config loads mutaplan's process-wide settings, adapted from
// the teacher's cli/internal/config down to what a library embedder
// actually needs: whether debug logging is on, which metrics backend
// to wire, and the default project ID used to tag metrics.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem config reads go through, swappable in tests
// with afero.NewMemMapFs().
var AppFs = afero.NewOsFs()

// MetricsBackend selects the MetricsSink implementation wired up by
// the embedding process.
type MetricsBackend string

const (
	MetricsNoop       MetricsBackend = "noop"
	MetricsPrometheus MetricsBackend = "prometheus"
)

// Config holds the settings the planner's embedding process loads
// once at startup. The planner package itself never touches viper —
// it only ever sees the resulting struct, keeping it pure per
// spec.md §5.
type Config struct {
	Debug          bool
	MetricsBackend MetricsBackend
	ProjectID      string
}

// Load reads configuration from (in ascending priority) defaults, a
// `.mutaplan.yaml` file in the working directory or home config
// directory, `MUTAPLAN_*` environment variables, and `.env`/.env.local
// files in the working directory.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".mutaplan")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "mutaplan"))

	viper.SetEnvPrefix("MUTAPLAN")
	viper.AutomaticEnv()

	viper.SetDefault("debug", false)
	viper.SetDefault("metrics_backend", string(MetricsNoop))
	viper.SetDefault("project_id", "default")

	_ = viper.ReadInConfig()

	loadDotEnv(".env")
	loadDotEnv(".env.local")

	return &Config{
		Debug:          viper.GetBool("debug"),
		MetricsBackend: MetricsBackend(viper.GetString("metrics_backend")),
		ProjectID:      viper.GetString("project_id"),
	}, nil
}

// loadDotEnv reads path through AppFs (so it's testable with an
// in-memory filesystem) and exports every key/value it finds into the
// process environment. A missing or unparsable file is silently
// skipped — .env files are optional overlays, not required config.
func loadDotEnv(path string) {
	data, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return
	}
	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return
	}
	for k, v := range envMap {
		os.Setenv(k, v)
	}
}
