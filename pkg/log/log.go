// Package log wires the global zap logger used across the application.
package log

import (
	"go.uber.org/zap"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

// Init builds the process-wide logger from the configuration and installs
// it as zap's global, so the rest of the code can reach it via zap.S().
func Init(cfg config.LogConfig) {
	conf := zap.NewDevelopmentConfig()
	conf.Level = zap.NewAtomicLevelAt(cfg.Level)
	conf.Encoding = cfg.Encoding
	zap.ReplaceGlobals(zap.Must(conf.Build()))
}
