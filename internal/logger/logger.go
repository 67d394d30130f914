// Package logger is a process-global leveled logging facade backed by zap.
package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	sugar.Store(zap.NewNop().Sugar())
}

// Init replaces the global logger. With debug enabled the development
// encoder is used and debug-level output is emitted.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	sugar.Store(l.Sugar())
	return nil
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = sugar.Load().Sync()
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { sugar.Load().Debugf(format, args...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { sugar.Load().Infof(format, args...) }

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) { sugar.Load().Warnf(format, args...) }

// Errorf logs a formatted error.
func Errorf(format string, args ...any) { sugar.Load().Errorf(format, args...) }
