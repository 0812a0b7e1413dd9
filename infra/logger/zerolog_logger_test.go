package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewZerologLoggerDevEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	log := NewZerologLogger("test")

	assert.NotNil(t, log)
	assert.IsType(t, &ZerologLogger{}, log)
}

func TestNewZerologLoggerProdEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	log := NewZerologLogger("test")

	assert.NotNil(t, log)
	log.Infof("hello %s", "world")
	log.Debugw("fields", map[string]any{"k": 1})
}

func TestNopLoggerImplementsInterface(t *testing.T) {
	var log Logger = NopLogger{}
	log.Debugf("ignored %d", 1)
	log.Infof("ignored")
	log.Warnf("ignored")
	log.Errorf("ignored")
}
