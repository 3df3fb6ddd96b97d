package orm

import (
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// newLogger routes GORM output through the application logger. Statement
// tracing is only enabled when the application runs at debug level.
func newLogger(logger *logrus.Logger, slowThreshold time.Duration) gormlogger.Interface {
	if logger == nil {
		return gormlogger.Discard
	}

	return gormlogger.New(logger.WithField("component", "gorm"), gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  gormLevel(logger.GetLevel()),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormLevel(level logrus.Level) gormlogger.LogLevel {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return gormlogger.Info
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
