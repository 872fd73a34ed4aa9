package leczair

import (
	"fmt"

	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) Log(v ...interface{})                  {}
func (nopLogger) Logf(format string, v ...interface{})  {}
func (nopLogger) Debug(format string, v ...interface{}) {}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger. Log and Logf go out at info level.
func NewZapLogger(sugar *zap.SugaredLogger) Logger {
	return zapLogger{sugar: sugar}
}

func (l zapLogger) Log(v ...interface{}) {
	l.sugar.Info(fmt.Sprint(v...))
}

func (l zapLogger) Logf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l zapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}
