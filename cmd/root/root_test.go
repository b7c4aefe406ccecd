package root

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	previous := Log
	t.Cleanup(func() { SetLogger(previous) })

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	SetLogger(logger)
	assert.Same(t, logger, Log)
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	SetLogger(nil)
	assert.Same(t, logger, Log, "a nil logger is ignored")
}
