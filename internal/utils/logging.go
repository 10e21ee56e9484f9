package utils

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

// GetLogger returns the process logger, building it on first use.
// Components fall back to it when no logger was injected.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// LoggerOrDefault returns logger unless it is nil.
func LoggerOrDefault(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return GetLogger()
}
