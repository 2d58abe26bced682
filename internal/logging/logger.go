package logging

import (
	"encoding/json"
	"log"
	"os"
	"sync/atomic"
	"time"
)

type Fields map[string]interface{}

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelError = "error"
	levelFatal = "fatal"
)

// debugEnabled gates Debug output; toggled once at startup.
var debugEnabled atomic.Bool

// SetDebug enables or disables debug-level output.
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

func emit(level, msg string, fields Fields) {
	entry := make(Fields, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["msg"] = msg
	b, err := json.Marshal(entry)
	if err != nil {
		// fall back to plain logging
		log.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	log.Println(string(b))
}

// Debug logs a debug message; suppressed unless SetDebug(true) was called.
func Debug(msg string, fields Fields) {
	if !debugEnabled.Load() {
		return
	}
	emit(levelDebug, msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit(levelInfo, msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	entry := fields
	if entry == nil {
		entry = Fields{}
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	emit(levelError, msg, entry)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	entry := fields
	if entry == nil {
		entry = Fields{}
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	emit(levelFatal, msg, entry)
	os.Exit(1)
}
