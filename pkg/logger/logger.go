package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02 15:04:05.000"

// Level уровень логирования
type Level = zerolog.Level

// Logger printf-логгер поверх zerolog.
// В консоль пишет человекочитаемый вывод, в файл (если указан) - JSON.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New создает логгер. Пустой filePath означает вывод только в stdout.
// Допустимые уровни: debug, info, warn, error.
func New(filePath string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: consoleTimeFormat},
	}

	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		writers = append(writers, file)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl, file: file}, nil
}

// NewWithWriter создает логгер с произвольным writer (JSON-вывод). Используется в тестах.
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// Nop возвращает логгер, который ничего не пишет.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel разбирает строковый уровень логирования.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}

// With возвращает дочерний логгер с фиксированным полем.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger(), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс с кодом 1.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл логов, если он был открыт.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
