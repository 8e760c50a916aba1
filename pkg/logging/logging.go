package logging

import (
	"context"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var (
	logger *otelzap.Logger
)

// Init initializes the global logger. Call this early in main.
// Setting PUBWATCH_DEBUG switches to a human-readable development
// encoder with debug level enabled.
func Init() {
	var z *zap.Logger
	var err error
	if os.Getenv("PUBWATCH_DEBUG") != "" {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	logger = otelzap.New(z)
	otelzap.ReplaceGlobals(logger)
}

// fallbackLogger returns a development logger if Init() was not called.
func fallbackLogger() *otelzap.Logger {
	z, _ := zap.NewDevelopment()
	return otelzap.New(z)
}

// L returns the global otelzap.Logger (for advanced use).
func L() *otelzap.Logger {
	if logger != nil {
		return logger
	}
	return fallbackLogger()
}

// C returns a context-aware logger (recommended for most use).
func C(ctx context.Context) otelzap.LoggerWithCtx {
	return L().Ctx(ctx)
}
