package helpers

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"sjsage522/pricecompare/logger"
	pkgerrors "sjsage522/pricecompare/pkg/errors"
)

// LoggerInterface is the non-fatal diagnostic channel for source faults
type LoggerInterface interface {
	LogError(source string, err error)
	LogInfo(format string, args ...interface{})
}

// Logger mirrors diagnostics to zerolog and, when errorFile is set,
// appends them to that file
type Logger struct {
	mu        sync.Mutex
	errorFile string
}

// NewLogger creates a new logger instance
func NewLogger(errorFile string) *Logger {
	return &Logger{
		errorFile: errorFile,
	}
}

// LogError logs an error with source name and timestamp
func (l *Logger) LogError(source string, err error) {
	// Transport faults are expected from live storefronts; anything else
	// points at broken selectors or local infrastructure
	log := logger.ForCrawler(source)
	var ce *pkgerrors.CrawlerError
	if errors.As(err, &ce) && ce.IsTransport() {
		log.Warn().Err(err).Msg("source contributed no listings")
	} else {
		log.Error().Err(err).Msg("source contributed no listings")
	}

	if l.errorFile == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, fileErr := os.OpenFile(l.errorFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		logger.Error("failed to open error log %s: %v", l.errorFile, fileErr)
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] [%s] %s\n", timestamp, source, err.Error())
}

// LogInfo logs an informational message
func (l *Logger) LogInfo(format string, args ...interface{}) {
	logger.Info(format, args...)
}
