package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с уровнем info (удобно для тестов).
var Log = logrus.New()

// Init настраивает глобальный логгер.
// Должна быть вызвана один раз при старте приложения в main.go.
func Init(level, format string) {
	Setup(Log, level, format, os.Stdout)
}

// Setup применяет уровень, форматтер и вывод к произвольному логгеру.
func Setup(l *logrus.Logger, level, format string, out io.Writer) {
	// 1. Уровень. По умолчанию - "info", для отладки "debug".
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	l.SetOutput(out)
}

// ForActor возвращает запись с полем actor_id
func ForActor(id string) *logrus.Entry {
	return Log.WithField("actor_id", id)
}
