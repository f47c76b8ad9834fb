// Package logging configures the process-wide logger. Services import the
// Logger directly; gin keeps its own access log.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// Init sets the level and, when file is non-empty, tees output into a
// size-rotated log file alongside stdout.
func Init(level, file string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		Logger.Warnf("invalid LOG_LEVEL %q, using info", level)
	}
	Logger.SetLevel(lvl)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	out := io.Writer(os.Stdout)
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	Logger.SetOutput(out)
}
