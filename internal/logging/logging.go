package logging

import (
	"os"

	"go.uber.org/zap"
)

// Init builds the process logger and installs it as the zap global. All
// packages log through zap.L(); tests keep the default no-op global.
func Init() (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
