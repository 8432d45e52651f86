package utils

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger builds the service logger. Set LOG_DEV=true for human-readable
// console output during development.
func InitLogger() (*zap.Logger, error) {
	if os.Getenv("LOG_DEV") == "true" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
