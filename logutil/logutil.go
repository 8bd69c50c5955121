// Package logutil provides prefixed loggers that share one redirectable sink.
//
// Packages declare a logger once:
//
//	var logger = logutil.GetLogger("[skin] ")
//
// Output is discarded until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
	file    *os.File
)

// GetLogger returns a logger with the given prefix writing to the shared sink.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, l)
	return l
}

// SetOutput redirects every logger obtained from GetLogger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(w)
}

// SetOutputFile redirects every logger to the named file, appending to it.
// An empty path discards output.
func SetOutputFile(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if path == "" {
		setOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	setOutput(f)
	file = f
	return nil
}

// setOutput must be called with mu held.
func setOutput(w io.Writer) {
	if file != nil {
		file.Close()
		file = nil
	}
	out = w
	for _, l := range loggers {
		l.SetOutput(w)
	}
}
