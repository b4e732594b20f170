package utils

import (
	"time"

	"github.com/iov-one/synto"
)

// Logging is a decorator to log instructions as they pass through. Every
// entry carries the instruction path and the processing time.
type Logging struct{}

var _ synto.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Checker) (*synto.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Deliverer) (*synto.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx synto.Context, tx synto.Tx, start time.Time, msg string, err error, check bool) {
	logger := synto.GetLogger(ctx).With(
		"path", synto.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// Message can be empty, the entry is still relevant.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
