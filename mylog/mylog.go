package mylog

import (
	"fmt"
	"log"
	"strings"
)

// Logger is the Printf interface accepted as output
type Logger interface {
	Printf(string, ...interface{})
}

type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

var levelStrings = map[string]Level{
	"ERROR": LevelError,
	"INFO":  LevelInfo,
	"DEBUG": LevelDebug,
}

var prefixes = map[Level]string{
	LevelError: "[ERROR] ",
	LevelInfo:  "[INFO ] ",
	LevelDebug: "[DEBUG] ",
}

// MyLog filters messages per level and writes them on the configured logger
type MyLog struct {
	logLevel Level
	logger   Logger
}

// NewLog return a MyLog structure for the given level name
func NewLog(lvl string, logger Logger) (*MyLog, error) {
	level, ok := levelStrings[strings.ToUpper(lvl)]
	if !ok {
		return nil, fmt.Errorf("invalid log level '%s'", lvl)
	}
	return &MyLog{
		logLevel: level,
		logger:   logger,
	}, nil
}

// Error prepare the output of ERROR message
func (l *MyLog) Error() logcontext {
	return logcontext{l, LevelError}
}

// Info prepare the output of INFO message
func (l *MyLog) Info() logcontext {
	return logcontext{l, LevelInfo}
}

// Debug prepare the output of DEBUG message
func (l *MyLog) Debug() logcontext {
	return logcontext{l, LevelDebug}
}

// IsDebug return true if log level is DEBUG
func (l *MyLog) IsDebug() bool {
	if l == nil {
		return false
	}
	return l.logLevel >= LevelDebug
}

// logcontext carries the level of the current message
type logcontext struct {
	mylog *MyLog
	lvl   Level
}

// Printf writes the message on the configured writer when its level passes
// the filter. If the logger isn't initialized, it logs to the console.
func (c logcontext) Printf(fmt string, args ...interface{}) {
	if c.mylog == nil || c.mylog.logger == nil {
		log.Printf(prefixes[c.lvl]+fmt, args...)
		return
	}
	if c.lvl <= c.mylog.logLevel {
		c.mylog.logger.Printf(prefixes[c.lvl]+fmt, args...)
	}
}
