package walk

// Severity summarizes the worst problem encountered during a traversal. It
// only ever increases as failures are discovered.
type Severity int

const (
	// OK means every reachable entry resolved cleanly.
	OK Severity = iota
	// MinorIssue means at least one entry was degraded or omitted.
	MinorIssue
	// Fatal is reserved for the surrounding CLI's own hard failures; the
	// walker never produces it.
	Fatal
)

// Escalate raises s to other if other is more severe.
func (s *Severity) Escalate(other Severity) {
	if other > *s {
		*s = other
	}
}

func (s Severity) String() string {
	switch s {
	case OK:
		return "ok"
	case MinorIssue:
		return "minor-issue"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}
