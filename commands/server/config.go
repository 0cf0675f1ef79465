package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/events"
	"github.com/joho/godotenv"
	"github.com/tendermint/tendermint/libs/log"
)

// Environment variables read by the node. They can also be declared in the
// .env file of the home directory.
const (
	EnvEventsDriver = "PIGGYD_EVENTS_DRIVER"
	EnvEventsDSN    = "PIGGYD_EVENTS_DSN"
	EnvLogLevel     = "PIGGYD_LOG_LEVEL"
)

const defaultLogLevel = "info"

// Config holds the node settings that are not part of the genesis.
type Config struct {
	// EventsDriver is the database driver used to store published
	// events, "sqlite" or "pgx". Events are only logged when empty.
	EventsDriver string
	// EventsDSN is the data source of the events database.
	EventsDSN string
	// LogLevel is one of debug, info, error or none.
	LogLevel string
}

// LoadConfig reads the .env file found in home, if any, and then the
// environment. Variables already present in the environment are not
// overwritten by the file.
func LoadConfig(home string) (Config, error) {
	envFile := filepath.Join(home, ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(errors.ErrInput, "cannot load %s: %s", envFile, err)
	}

	c := Config{
		EventsDriver: os.Getenv(EnvEventsDriver),
		EventsDSN:    os.Getenv(EnvEventsDSN),
		LogLevel:     os.Getenv(EnvLogLevel),
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.EventsDriver != "" && c.EventsDSN == "" {
		return c, errors.Wrapf(errors.ErrEmpty, "%s is required when %s is set", EnvEventsDSN, EnvEventsDriver)
	}
	return c, nil
}

// Logger returns base filtered to the configured level.
func (c Config) Logger(base log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(base, opt), nil
}

// EventSink returns the sink all committed events are published to. Events
// are always logged. When a database is configured they are also stored
// there. The returned function releases the database connection.
func (c Config) EventSink(logger log.Logger) (piggybank.EventSink, func() error, error) {
	logSink := events.NewLogSink(logger)
	if c.EventsDriver == "" {
		return logSink, func() error { return nil }, nil
	}

	sqlSink, err := events.OpenSQLSink(c.EventsDriver, c.EventsDSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "events database")
	}
	return events.Multi(logSink, sqlSink), sqlSink.Close, nil
}
