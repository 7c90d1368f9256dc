package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// NewLogger: prod пишет JSON с уровня info, остальные окружения получают
// цветной консольный вывод с debug
func NewLogger(env string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if env == EnvProd {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	log, err := cfg.Build(zap.Fields(
		zap.String("service", "teammembers"),
		zap.String("env", env),
	))
	if err != nil {
		return nil, err
	}
	return log, nil
}
