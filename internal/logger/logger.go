package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rivo/tview"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Types int

const (
	Info Types = iota
	Error
	Warn
	Fatal
)

// Logger is a tagged handle onto the process-wide log sinks. Handles created
// before InitLogger stay valid and pick up the sinks once they exist.
type Logger struct {
	tag string
}

type manager struct {
	view    *tview.TextView
	dev     bool
	zap     *zap.Logger
	logFile *os.File
}

var (
	mu         sync.RWMutex
	logManager = &manager{zap: zap.NewNop()}
)

// InitLogger wires the shared sinks. In dev mode lines are echoed to view, or
// to stderr when view is nil. A non-empty logPath adds a JSON log file.
// Calling it again replaces the previous sinks.
func InitLogger(dev bool, logPath string, view *tview.TextView) error {
	m := &manager{view: view, dev: dev}

	var cores []zapcore.Core
	if logPath != "" {
		timestamp := time.Now().Format("20060102_150405")
		fileName := fmt.Sprintf("gemchat_log_%s.log", timestamp)
		filePath := filepath.Join(logPath, fileName)

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		m.logFile = file
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			zapcore.DebugLevel,
		))
	}
	if dev && view == nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zapcore.DebugLevel,
		))
	}

	if len(cores) == 0 {
		m.zap = zap.NewNop()
	} else {
		m.zap = zap.New(zapcore.NewTee(cores...))
	}

	mu.Lock()
	old := logManager
	logManager = m
	mu.Unlock()

	old.close()
	return nil
}

// SetDev switches echoing to the debug console on or off.
func SetDev(dev bool) {
	mu.Lock()
	defer mu.Unlock()
	m := *logManager
	m.dev = dev
	logManager = &m
}

func NewLogger(tag string) *Logger {
	return &Logger{tag: tag}
}

func current() *manager {
	mu.RLock()
	defer mu.RUnlock()
	return logManager
}

func (l *Logger) log(logTypes Types, v ...interface{}) {
	m := current()
	message := fmt.Sprint(v...)

	if m.dev && m.view != nil {
		var format string
		switch logTypes {
		case Info:
			format = "[green]DEBUG (%s): %s[-]\n"
		case Error:
			format = "[red]DEBUG (%s): %s[-]\n"
		case Warn:
			format = "[yellow]DEBUG (%s): %s[-]\n"
		case Fatal:
			format = "[red]DEBUG (%s): %s[-]\n"
		}
		fmt.Fprintf(m.view, format, l.tag, tview.Escape(message))
	}

	field := zap.String("tag", l.tag)
	switch logTypes {
	case Info:
		m.zap.Info(message, field)
	case Warn:
		m.zap.Warn(message, field)
	case Error, Fatal:
		m.zap.Error(message, field, zap.String("type", logTypes.toString()))
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.log(Info, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.log(Error, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(Warn, v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.log(Fatal, v...)
	Close()
	os.Exit(1)
}

// Close flushes and releases the shared sinks. Loggers keep working
// afterwards but write nowhere.
func Close() {
	mu.Lock()
	old := logManager
	logManager = &manager{zap: zap.NewNop()}
	mu.Unlock()

	old.close()
}

func (m *manager) close() {
	_ = m.zap.Sync()
	if m.logFile != nil {
		m.logFile.Close()
	}
}

func (t Types) toString() string {
	switch t {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
