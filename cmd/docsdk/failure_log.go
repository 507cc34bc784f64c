package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var failureLogMu sync.Mutex

// logFailure appends one JSON line per failed target to path. An empty path
// disables the log.
func logFailure(path, id, target string, err error) error {
	if path == "" {
		return nil
	}

	if id == "" {
		id = "unknown"
	}

	failureLogMu.Lock()
	defer failureLogMu.Unlock()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
	}

	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer f.Close()

	logger := zerolog.New(f).With().Timestamp().Logger()
	logger.
		Error().
		Str("id", id).
		Str("target", target).
		Err(err).
		Msg("docsdk command failed")

	return nil
}

// withFailureLog records err in the fail log and returns it, joined with any
// problem writing the log itself.
func withFailureLog(path, id, target string, err error) error {
	if err == nil {
		return nil
	}
	if logErr := logFailure(path, id, target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}
