package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger appropriate for the given environment:
// human-readable output in development, JSON in everything else.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// NewNamed builds an environment-appropriate logger named after the service.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
