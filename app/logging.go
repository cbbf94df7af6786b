package app

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// logDuration writes information about the time and result of an operation
// to the logger. Failures are logged as errors, mutations as info and queries
// as debug.
func logDuration(logger log.Logger, start time.Time, op string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger = logger.With("op", op, "duration", delta/time.Microsecond)

	if err != nil {
		logger.Error("operation failed", "err", err)
		return
	}
	if lowPrio {
		logger.Debug("query")
	} else {
		logger.Info("committed")
	}
}
