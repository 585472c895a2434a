package log

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Default *logrus.Logger

type Logger = logrus.Logger

func init() {
	Default = logrus.New()
	output := &lumberjack.Logger{
		Filename:   "./logs/mus.log",
		MaxSize:    100, // megabytes
		MaxBackups: 4,
		MaxAge:     7, // days
		LocalTime:  true,
	}
	Default.SetOutput(io.MultiWriter(Default.Out, output))
	Default.SetLevel(logrus.InfoLevel)
}

func SetLevel(lvstr string) {
	lv, err := logrus.ParseLevel(lvstr)
	if err != nil {
		Default.Error(err)
	} else {
		Default.SetLevel(lv)
	}
}

// Debugf logs a message at level Debug on the standard logger.
func Debugf(format string, args ...interface{}) {
	Default.Debugf(format, args...)
}

// Printf logs a message at level Info on the standard logger.
func Printf(format string, args ...interface{}) {
	Default.Infof(format, args...)
}

// Println logs a message at level Info on the standard logger.
func Println(args ...interface{}) {
	Default.Infoln(args...)
}

// Warnf logs a message at level Warn on the standard logger.
func Warnf(format string, args ...interface{}) {
	Default.Warnf(format, args...)
}

// Errorf logs a message at level Error on the standard logger.
func Errorf(format string, args ...interface{}) {
	Default.Errorf(format, args...)
}

// Fatalf logs a message at level Fatal on the standard logger then exits.
func Fatalf(format string, args ...interface{}) {
	Default.Fatalf(format, args...)
}

// Fatal logs a message at level Fatal on the standard logger then exits.
func Fatal(args ...interface{}) {
	Default.Fatal(args...)
}
