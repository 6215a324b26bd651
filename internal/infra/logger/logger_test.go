package logger

import (
	"testing"

	"github.com/maxbond/telegram/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "debug", Environment: "production"})
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Get().Formatter)

	Init(&config.AppConfig{LogLevel: "loud", Environment: "development"})
	assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Get().Formatter)
}

func TestComponent(t *testing.T) {
	entry := Component("scheduler")
	assert.Equal(t, "scheduler", entry.Data["component"])
}
