package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Structured data IDs, RFC 5424 section 7.2.2. 32473 is the enterprise
// number reserved for documentation use; swap in a registered PEN
// before shipping to syslog collectors that care.
const (
	FieldgatePEN = 32473
	SDIDAuth     = "auth@32473"
	SDIDSubject  = "subject@32473"
	SDIDAction   = "action@32473"
	SDIDClient   = "client@32473"
	SDIDTenant   = "tenant@32473"
	SDIDPolicy   = "policy@32473"
)

// Syslog facilities used by security events.
const (
	FacilityAuth     = 4
	FacilityAuthPriv = 10
)

// Severity is a syslog severity level.
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Event is anything the audit trail can record.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger emits events as RFC 5424 syslog lines.
type Logger struct {
	writer   io.Writer
	hostname string
	appName  string
	pid      int
}

func NewLogger() *Logger {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "-"
	}
	return &Logger{
		writer:   os.Stdout,
		hostname: hostname,
		appName:  "fieldgate",
		pid:      os.Getpid(),
	}
}

// SetWriter redirects output, for tests.
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

// Log writes one event as
// <PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG.
func (l *Logger) Log(event Event) {
	var line strings.Builder
	fmt.Fprintf(&line, "<%d>1 ", event.Facility()*8+int(event.Severity()))
	line.WriteString(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	fmt.Fprintf(&line, " %s %s %d %s ", l.hostname, l.appName, l.pid, event.MessageID())
	writeStructuredData(&line, event.StructuredData())
	line.WriteString(" " + event.Message() + "\n")

	_, _ = io.WriteString(l.writer, line.String())
}

// writeStructuredData renders SD elements in sorted SDID and parameter
// order so identical events produce identical lines.
func writeStructuredData(out *strings.Builder, sd map[string]map[string]string) {
	if len(sd) == 0 {
		out.WriteString("-")
		return
	}

	sdids := make([]string, 0, len(sd))
	for sdid := range sd {
		sdids = append(sdids, sdid)
	}
	sort.Strings(sdids)

	for _, sdid := range sdids {
		params := sd[sdid]
		keys := make([]string, 0, len(params))
		for key := range params {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out.WriteString("[" + sdid)
		for _, key := range keys {
			out.WriteString(" " + key + "=" + quoteSDValue(params[key]))
		}
		out.WriteString("]")
	}
}

// quoteSDValue escapes per RFC 5424 section 6.3.3: backslash, double
// quote, and closing bracket.
func quoteSDValue(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `]`, `\]`)
	return `"` + replacer.Replace(value) + `"`
}

var (
	// DefaultLogger receives every event passed to Log.
	DefaultLogger = NewLogger()

	// DefaultStore persists events when AUDIT_DATABASE_URL is set.
	DefaultStore *Store

	enabled     = true
	enabledOnce sync.Once
	storeOnce   sync.Once
)

// IsEnabled reports whether auditing is on. FIELDGATE_AUDIT_ENABLED
// set to false/0/no turns it off; the check runs once.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		switch os.Getenv("FIELDGATE_AUDIT_ENABLED") {
		case "false", "0", "no":
			enabled = false
		}
	})
	return enabled
}

// SetEnabled overrides the environment switch. Call it before the
// first Log for consistent behavior.
func SetEnabled(on bool) {
	enabled = on
}

// Log emits an event to the default logger and, when configured, the
// audit database. The database is opened lazily on first use.
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeOnce.Do(func() {
		var err error
		DefaultStore, err = NewStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "audit: audit database unavailable: %v\n", err)
		}
	})
	if DefaultStore == nil {
		return
	}
	if err := DefaultStore.Save(event); err != nil {
		fmt.Fprintf(os.Stderr, "audit: persist failed: %v\n", err)
	}
}
