package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger configures the global zerolog logger from environment variables.
//
//	LOG_LEVEL            trace|debug|info|warn|error (default info)
//	LOG_FORMAT           console|json (default console)
//	LOG_FILE_ENABLED     write logs to a rotated file in addition to stdout
//	LOG_FILE_PATH        log file path (default logs/app.log)
//	LOG_FILE_MAX_SIZE_MB rotation threshold in MB (default 100)
//	LOG_FILE_MAX_BACKUPS rotated files to keep (default 5)
//	LOG_FILE_MAX_AGE_DAYS max age of rotated files (default 30)
//	LOG_FILE_COMPRESS    gzip rotated files
//
// The returned io.Closer is non-nil when file logging is active and must be
// closed on shutdown.
func SetupLogger() io.Closer {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		writers = append(writers, os.Stdout)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	var fileCloser io.Closer
	fileEnabled, _ := strconv.ParseBool(os.Getenv("LOG_FILE_ENABLED"))
	if fileEnabled {
		logFilePath := os.Getenv("LOG_FILE_PATH")
		if logFilePath == "" {
			logFilePath = "logs/app.log"
		}
		maxSizeMB, _ := strconv.Atoi(os.Getenv("LOG_FILE_MAX_SIZE_MB"))
		if maxSizeMB <= 0 {
			maxSizeMB = 100
		}
		maxBackups, _ := strconv.Atoi(os.Getenv("LOG_FILE_MAX_BACKUPS"))
		if maxBackups <= 0 {
			maxBackups = 5
		}
		maxAgeDays, _ := strconv.Atoi(os.Getenv("LOG_FILE_MAX_AGE_DAYS"))
		if maxAgeDays <= 0 {
			maxAgeDays = 30
		}
		compressLogs, _ := strconv.ParseBool(os.Getenv("LOG_FILE_COMPRESS"))

		fileWriter := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compressLogs,
		}
		writers = append(writers, fileWriter)
		fileCloser = fileWriter
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(multiWriter).With().Timestamp().Caller().Logger()

	log.Info().Msgf("Global logger initialized. Level: %s. Format: %s. File logging: %t.",
		zerolog.GlobalLevel().String(), logFormat, fileCloser != nil)

	return fileCloser
}
