package peg

import (
	"github.com/sirupsen/logrus"

	"github.com/shibukawa/snappeg/cursor"
)

// Tracer observes rule evaluation.
type Tracer interface {
	Enter(rule string, pos cursor.Position)
	Exit(rule string, pos cursor.Position, matched bool)
}

// LogTracer writes rule entry and exit as debug log entries.
type LogTracer struct {
	log logrus.FieldLogger
}

func NewLogTracer(log logrus.FieldLogger) *LogTracer {
	return &LogTracer{log: log}
}

func (t *LogTracer) Enter(rule string, pos cursor.Position) {
	t.fields(rule, pos).Debug("enter rule")
}

func (t *LogTracer) Exit(rule string, pos cursor.Position, matched bool) {
	t.fields(rule, pos).WithField("matched", matched).Debug("exit rule")
}

func (t *LogTracer) fields(rule string, pos cursor.Position) *logrus.Entry {
	return t.log.WithFields(logrus.Fields{
		"rule":   rule,
		"line":   pos.Line,
		"col":    pos.Column,
		"offset": pos.Offset,
	})
}
