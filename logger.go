package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/peermap/peermap/geocache"
)

type logger struct {
	lookupLog zerolog.Logger
	storeLog  zerolog.Logger
}

func (l *logger) LookupError(ip string, err error) {
	l.lookupLog.Error().Str("ip", ip).Err(err).Msg("")
}

func (l *logger) LoadWarning(key string, msg string) {
	l.storeLog.Warn().Str("key", key).Msg(msg)
}

func (l *logger) SaveError(path string, err error) {
	l.storeLog.Error().Str("path", path).Err(err).Msg("")
}

func newLogger() geocache.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
		storeLog:  zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "store").Logger(),
	}
}
