package piggybank

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/piggybank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is passed between the app, decorators and handlers.
//
// For every value of type T kept in the context there are two functions
//
//	WithXYZ(Context, T) Context
//	GetXYZ(Context) (val T, ok bool)
//
// WithXYZ panics if the value was previously set, so that a lower level
// component cannot overwrite what the app declared for the block (height,
// header, chain id).
type Context = context.Context

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeyTime
)

var (
	// DefaultLogger is used for all context that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the regexp a chain id must match.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeader sets the block header for the Context.
// Panics if header already set.
func WithHeader(ctx Context, header abci.Header) Context {
	if _, ok := GetHeader(ctx); ok {
		panic("Header already set")
	}
	return context.WithValue(ctx, contextKeyHeader, header)
}

// GetHeader returns the current block header.
func GetHeader(ctx Context) (abci.Header, bool) {
	val, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return val, ok
}

// WithHeight sets the block height for the Context.
// Panics if height already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the context. Block time is the "now"
// every time based condition is compared against.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns current block wall clock time as declared in the context.
// An error is returned if a block time is not present in the context or if
// the zero time value is found.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	if val.IsZero() {
		return val, errors.Wrap(errors.ErrHuman, "zero block time")
	}
	return val, nil
}

// BlockNow returns the block time as UnixTime.
func BlockNow(ctx Context) (UnixTime, error) {
	now, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(now), nil
}

// mustBlockNow is used by time comparisons. A missing block time means the
// application is wired incorrectly.
func mustBlockNow(ctx Context) UnixTime {
	now, err := BlockNow(ctx)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return now
}

// IsExpired returns true if given time is not after the block "now".
// Expiration is inclusive: a time equal to now is expired.
func IsExpired(ctx Context, t UnixTime) bool {
	return t <= mustBlockNow(ctx)
}

// InTheFuture returns true if given time is strictly after the block "now".
func InTheFuture(ctx Context, t UnixTime) bool {
	return t > mustBlockNow(ctx)
}

// InThePast returns true if given time is strictly before the block "now".
func InThePast(ctx Context, t UnixTime) bool {
	return t < mustBlockNow(ctx)
}

// WithChainID sets the chain id for the Context.
// Panics if chain id already set or invalid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("Invalid chain ID: %s", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Empty string if not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger sets the logger for this Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo returns a context with the given key value pairs attached to
// its logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}
