package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

const serviceName = "twistedbrody"

var logger = log.New()

func init() {
	logger.SetOutput(os.Stdout)
	// LOG_TO_FILE=true switches to a dated file under ./logs, for bare-metal
	// runs without a log collector.
	if os.Getenv("LOG_TO_FILE") == "true" {
		if err := os.MkdirAll("logs", 0o755); err == nil {
			name := filepath.Join("logs", fmt.Sprintf("%s.log", time.Now().UTC().Format("2006-01-02")))
			if file, openErr := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); openErr == nil {
				logger.SetOutput(file)
			} else {
				log.Warnf("Failed to open log file %s: %v, staying on stdout", name, openErr)
			}
		}
	}

	logger.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
}

// GetLogger returns an entry annotated with the calling site, so every line
// carries the function, file, and line that emitted it.
func GetLogger() *log.Entry {
	entry := logger.WithField("service", serviceName)
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return entry
	}
	fields := log.Fields{
		"file": fmt.Sprintf("%s:%d", filepath.Base(file), line),
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields["function"] = fn.Name()
	}
	return entry.WithFields(fields)
}
