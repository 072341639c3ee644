package log

import (
	_log "log"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// Log is a namespaced console logger. Debug output is off unless DEBUG is set on the
// instance or the namespace matches the DEBUG environment variable, which holds a comma
// separated list of globs ("events:*,-events:target").
type Log struct {
	*_log.Logger

	DEBUG bool

	mu       sync.RWMutex // protects the following fields
	prefix   string
	enabled  []*regexp.Regexp
	disabled []*regexp.Regexp
}

func NewLog(prefix string) *Log {
	l := &Log{
		Logger: _log.New(os.Stderr, "", 0),
		DEBUG:  false,
	}

	if prefix != "" {
		l.SetPrefix(prefix)
	}

	l.ParseNamespaces(os.Getenv("DEBUG"))

	return l
}

func compileNamespace(namespace string) *regexp.Regexp {
	return regexp.MustCompile("^" + strings.ReplaceAll(regexp.QuoteMeta(namespace), `\*`, `.*`) + "$")
}

// ParseNamespaces replaces the namespace filters parsed from a DEBUG style list.
func (d *Log) ParseNamespaces(namespaces string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.enabled, d.disabled = nil, nil
	for _, ns := range strings.FieldsFunc(namespaces, func(r rune) bool { return r == ',' || r == ' ' }) {
		if strings.HasPrefix(ns, "-") {
			d.disabled = append(d.disabled, compileNamespace(ns[1:]))
		} else {
			d.enabled = append(d.enabled, compileNamespace(ns))
		}
	}
}

func (d *Log) checkNamespace(namespace string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, re := range d.disabled {
		if re.MatchString(namespace) {
			return false
		}
	}
	for _, re := range d.enabled {
		if re.MatchString(namespace) {
			return true
		}
	}
	return false
}

// Enabled reports whether Debug output is currently written.
func (d *Log) Enabled() bool {
	return d.DEBUG || d.checkNamespace(d.Prefix())
}

// Console log Debug.
func (d *Log) Debug(message string, args ...any) {
	if d.Enabled() {
		d.Logger.Println(color.Debug.Sprintf(message, args...))
	}
}

// Console log Info.
func (d *Log) Info(message string, args ...any) {
	d.Logger.Println(color.Info.Sprintf(message, args...))
}

// Console log Warning.
func (d *Log) Warning(message string, args ...any) {
	d.Logger.Println(color.Warn.Sprintf(message, args...))
}

// Console log Error.
func (d *Log) Error(message string, args ...any) {
	d.Logger.Println(color.Danger.Sprintf(message, args...))
}

// Prefix returns the output prefix for the logger.
func (d *Log) Prefix() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.prefix
}

// SetPrefix sets the output prefix for the logger.
func (d *Log) SetPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prefix = prefix

	d.Logger.SetPrefix(prefix + " ")
}
