package log

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// Severity describes a log level.
type Severity uint32

// Message describes a log line.
type logLine struct {
	msg       string
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer             chan *logLine
	forceEmptyingOfBuffer chan struct{}

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	logsWaiting     = make(chan struct{}, 1)
	logsWaitingFlag = abool.NewBool(false)

	shutdownSignal   = make(chan struct{})
	writerStopSignal = make(chan struct{})

	started       = abool.NewBool(false)
	startedSignal = make(chan struct{})
)

// SetLogLevel sets a new log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// ParseLevel returns the level severity of a log level name.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "TRAC"
	case DebugLevel:
		return "DEBU"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERRO"
	case CriticalLevel:
		return "CRIT"
	default:
		return "NONE"
	}
}

// Start starts the logging system. Must be called in order to see logs.
func Start() error {
	if !started.SetToIf(false, true) {
		return nil
	}

	logBuffer = make(chan *logLine, 1024)
	forceEmptyingOfBuffer = make(chan struct{}, 4)

	go writer()

	close(startedSignal)
	return nil
}

// Shutdown writes remaining log lines and stops the logging system.
func Shutdown() {
	close(shutdownSignal)
	if started.IsSet() {
		// wait for the writer to drain the buffer
		<-writerStopSignal
	}
}
