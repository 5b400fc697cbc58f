package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel разбирает уровень логирования из строки конфига.
// Неизвестные значения трактуются как info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger пишет логи одновременно в файл и stdout
type Logger struct {
	out   *log.Logger
	level Level
	file  *os.File
}

// New создает логгер. Если filePath пустой, пишет только в stdout.
func New(filePath, level string) (*Logger, error) {
	writers := []io.Writer{os.Stdout}

	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory %s: %w", dir, err)
			}
		}

		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", filePath, err)
		}
		file = f
		writers = append(writers, f)
	}

	return &Logger{
		out:   log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds),
		level: ParseLevel(level),
		file:  file,
	}, nil
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug логирует отладочное сообщение
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, "DEBUG", format, args...)
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, "INFO", format, args...)
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelWarn, "WARN", format, args...)
}

// Error логирует ошибку
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(LevelError, "ERROR", format, args...)
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.printf(LevelError, "FATAL", format, args...)
	_ = l.Close()
	os.Exit(1)
}

func (l *Logger) printf(level Level, tag, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("["+tag+"] "+format, args...)
}
