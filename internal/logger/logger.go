package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var instance *zap.Logger

// Init configure le logger global selon l'environnement.
func Init(env string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	instance, err = cfg.Build()
	if err != nil {
		log.Fatalf("Impossible d'initialiser le logger: %v", err)
	}
}

// L retourne le logger global (no-op tant que Init n'a pas été appelé).
func L() *zap.Logger {
	if instance == nil {
		return zap.NewNop()
	}
	return instance
}
