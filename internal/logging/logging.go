// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init configures the standard logger to write to stdout and, when logPath is
// non-empty, to an append-mode log file, creating parent directories as
// needed. Calling Init again closes any previously opened file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close flushes and closes the log file if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes a formatted application event.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogRequest records an outbound HTTP request and its response status.
// A zero status means the request never completed.
func LogRequest(method, url string, status int) {
	log.Println(buildRequestMessage(method, url, status))
}

// LogCommand records an external binary invocation.
func LogCommand(bin string, args []string) {
	log.Println(buildCommandMessage(bin, args))
}

func buildRequestMessage(method, url string, status int) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = "GET"
	}
	target := strings.TrimSpace(url)
	if target == "" {
		target = "unknown"
	}
	statusValue := "none"
	if status > 0 {
		statusValue = strconv.Itoa(status)
	}
	return fmt.Sprintf("[HTTP] method=%s url=%s status=%s", m, target, statusValue)
}

func buildCommandMessage(bin string, args []string) string {
	name := strings.TrimSpace(bin)
	if name == "" {
		name = "unknown"
	}
	parts := []string{fmt.Sprintf("[EXEC] bin=%s", name)}
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			if strings.ContainsAny(a, " \t") {
				quoted[i] = strconv.Quote(a)
			} else {
				quoted[i] = a
			}
		}
		parts = append(parts, fmt.Sprintf("args=%s", strings.Join(quoted, " ")))
	}
	return strings.Join(parts, " ")
}
