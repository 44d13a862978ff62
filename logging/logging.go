package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// FatalStatus is the exit status used by Fatal.
const FatalStatus = 0

// Config controls where an Emitter writes and how it terminates.
type Config struct {
	// Output receives the log lines. Defaults to os.Stdout.
	Output io.Writer

	// Exit ends the process after a fatal line. Defaults to os.Exit.
	Exit func(int)
}

// Emitter writes info and fatal lines.
type Emitter struct {
	logger *logrus.Logger
}

// New creates an Emitter.
func New(cfg Config) *Emitter {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	exit := cfg.Exit
	if exit == nil {
		exit = os.Exit
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&lineFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	logger.ExitFunc = exit

	return &Emitter{logger: logger}
}

// Info writes {"info":<message>}.
func (e *Emitter) Info(format string, args ...any) {
	e.logger.Log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Fatal writes {"err":<message>} and exits with FatalStatus.
func (e *Emitter) Fatal(format string, args ...any) {
	e.logger.Log(logrus.FatalLevel, fmt.Sprintf(format, args...))
	e.logger.Exit(FatalStatus)
}

// Check calls Fatal with err's message when err is non-nil.
func (e *Emitter) Check(err error) {
	if err != nil {
		e.Fatal("%s", err)
	}
}

var std = New(Config{})

// Info writes an info line to standard output.
func Info(format string, args ...any) { std.Info(format, args...) }

// Fatal writes an err line to standard output and exits with FatalStatus.
func Fatal(format string, args ...any) { std.Fatal(format, args...) }

// Check ends the process through Fatal when err is non-nil.
func Check(err error) { std.Check(err) }
