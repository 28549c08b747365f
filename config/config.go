// Package config parses muhashutxostat's command-line configuration, in
// the shape kaspad's various single-binary tools (faucet, dnsseeder) do:
// a flat struct of jessevdk/go-flags tags, a package-level Parse that
// applies defaults and wires up logging.
package config

import (
	"path/filepath"
	"runtime"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/kaspanet/go-muhash3072/logger"
)

const (
	defaultLogFilename    = "muhashutxostat.log"
	defaultErrLogFilename = "muhashutxostat_err.log"
	defaultLogLevel       = "info"
)

var defaultLogDir = filepath.Join(".", "logs")

// Config defines the configuration options for muhashutxostat.
type Config struct {
	UTXODumpPath string `long:"utxo-dump" description:"Path to a newline-delimited UTXO dump file" required:"true"`
	Shards       int    `long:"shards" description:"Number of parallel shards to fold the UTXO dump into (default: number of CPUs)"`
	LogDir       string `long:"logdir" description:"Directory to write log files into"`
	LogLevel     string `long:"loglevel" description:"Logging level: trace, debug, info, warn, error, critical, off"`
	SnapshotDB   string `long:"snapshot-db" description:"Optional LevelDB directory to record this run's digest as a named snapshot"`
	SnapshotName string `long:"snapshot-name" description:"Name under which to record the snapshot (required if --snapshot-db is set)"`
}

var activeConfig *Config

// Parse parses the process's command-line arguments into a Config,
// applying defaults, validating cross-field constraints, and initializing
// the logging backend.
func Parse() (*Config, error) {
	cfg := &Config{
		Shards:   runtime.GOMAXPROCS(0),
		LogDir:   defaultLogDir,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.Shards < 1 {
		return nil, errors.Errorf("--shards must be at least 1, got %d", cfg.Shards)
	}
	if _, ok := logger.LevelFromString(cfg.LogLevel); !ok {
		return nil, errors.Errorf("invalid --loglevel %q", cfg.LogLevel)
	}
	if cfg.SnapshotDB != "" && cfg.SnapshotName == "" {
		return nil, errors.New("--snapshot-name is required when --snapshot-db is set")
	}

	logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
	errLogFile := filepath.Join(cfg.LogDir, defaultErrLogFilename)
	if err := logger.InitLog(logFile, errLogFile); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logging")
	}
	if err := logger.SetLogLevels(cfg.LogLevel); err != nil {
		return nil, err
	}

	activeConfig = cfg
	return cfg, nil
}

// ActiveConfig returns the most recently parsed Config, or an error if
// Parse has not been called yet.
func ActiveConfig() (*Config, error) {
	if activeConfig == nil {
		return nil, errors.New("no configuration was parsed for muhashutxostat")
	}
	return activeConfig, nil
}
