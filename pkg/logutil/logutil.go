// Package logutil provides logging utilities.
//
// All loggers returned by GetLogger share one output, which discards
// everything until SetOutput or SetOutputFile is called.
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
	outFile *os.File
	loggers []*log.Logger
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers to w. A nil w discards the
// output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeOutFile()
	if w == nil {
		w = io.Discard
	}
	setOutput(w)
}

// SetOutputFile redirects the output of all loggers to the named file,
// appending to it. An empty name discards the output, and so does a file
// that cannot be opened.
func SetOutputFile(fname string) error {
	mu.Lock()
	defer mu.Unlock()
	closeOutFile()
	setOutput(io.Discard)
	if fname == "" {
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	outFile = file
	setOutput(file)
	return nil
}

func setOutput(w io.Writer) {
	out = w
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

func closeOutFile() {
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
}
