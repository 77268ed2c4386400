package htmlsanitizer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Change is the kind of alteration reported in a ChangeEvent.
type Change uint8

const (
	Removed Change = iota
	Added
	Changed
)

func (c Change) String() string {
	switch c {
	case Removed:
		return "removed"
	case Added:
		return "added"
	case Changed:
		return "changed"
	}
	return fmt.Sprintf("Change(%d)", c)
}

// ChangeEvent describes one thing the sanitizer altered. AttrName is empty
// when the whole element was affected.
type ChangeEvent struct {
	Change   Change
	TagName  string
	AttrName string
	OldValue string
	NewValue string
}

func (e ChangeEvent) String() string {
	if e.AttrName == "" {
		return fmt.Sprintf("%s %s", e.TagName, e.Change)
	}
	return fmt.Sprintf("%s.%s %s", e.TagName, e.AttrName, e.Change)
}

// ChangeLogger receives audit events. It never influences the output.
type ChangeLogger interface {
	LogChange(ev ChangeEvent)
}

// ChangeLoggerFunc adapts a function to ChangeLogger.
type ChangeLoggerFunc func(ev ChangeEvent)

func (f ChangeLoggerFunc) LogChange(ev ChangeEvent) { f(ev) }

// NewHCLogChangeLogger writes every event to l at debug level.
func NewHCLogChangeLogger(l hclog.Logger) ChangeLogger {
	return ChangeLoggerFunc(func(ev ChangeEvent) {
		args := []interface{}{"change", ev.Change.String(), "tag", ev.TagName}
		if ev.AttrName != "" {
			args = append(args, "attribute", ev.AttrName, "old", ev.OldValue, "new", ev.NewValue)
		}
		l.Debug("markup sanitized", args...)
	})
}

func logElementRemoved(l ChangeLogger, tagName string) {
	if l != nil {
		l.LogChange(ChangeEvent{Change: Removed, TagName: tagName})
	}
}

// logAttr reports an attribute whose value went from oldValue to newValue;
// removed means the attribute is gone from the output.
func logAttr(l ChangeLogger, tagName, attrName, oldValue, newValue string, removed bool) {
	if l == nil || (!removed && oldValue == newValue) {
		return
	}
	ev := ChangeEvent{TagName: tagName, AttrName: attrName, OldValue: oldValue, NewValue: newValue}
	switch {
	case removed:
		ev.Change = Removed
		ev.NewValue = ""
	case oldValue == "":
		ev.Change = Added
	default:
		ev.Change = Changed
	}
	l.LogChange(ev)
}
