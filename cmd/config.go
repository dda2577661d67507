package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName = "gradeline"
	envPrefix      = "GRADELINE"

	maxPointsKey = "grade.max_points"
	workersKey   = "grade.workers"
	sortKey      = "grade.sort"
	outputKey    = "grade.output"

	logFilenameKey   = "log.filename"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"

	defaultMaxPoints = 100
	defaultWorkers   = 1
	defaultSort      = "name"
	defaultOutput    = "grading_results.csv"

	defaultLogFilename   = ".gradeline.log"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

// Runs before the flag definitions in the other files of this package,
// which read viper defaults.
func init() {
	// A .env beside the working directory is the usual way API keys are
	// supplied; absence is not an error.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(maxPointsKey, defaultMaxPoints)
	viper.SetDefault(workersKey, defaultWorkers)
	viper.SetDefault(sortKey, defaultSort)
	viper.SetDefault(outputKey, defaultOutput)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn().Err(err).Msg("config file unreadable, using defaults")
		}
	}
}

// configureLogger routes structured logs to a rotating file, plus a
// console writer on stderr when verbose. Progress output on stdout is
// separate and always on.
func configureLogger(verbose bool) {
	logPath := viper.GetString(logFilenameKey)
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}
	if dir := filepath.Dir(logPath); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
	}

	writers := []io.Writer{fileWriter}
	level := zerolog.InfoLevel
	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
}
