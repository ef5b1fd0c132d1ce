package models

// VisitorClass partitions visitors for step selection and completion flags.
type VisitorClass string

const (
	VisitorAnonymous     VisitorClass = "anonymous"
	VisitorAuthenticated VisitorClass = "authenticated"
)

// VisitorClasses lists every class in a stable order.
func VisitorClasses() []VisitorClass {
	return []VisitorClass{VisitorAnonymous, VisitorAuthenticated}
}

// ParseVisitorClass normalizes a raw class name; anything unrecognized is
// treated as anonymous.
func ParseVisitorClass(raw string) VisitorClass {
	if VisitorClass(raw) == VisitorAuthenticated {
		return VisitorAuthenticated
	}
	return VisitorAnonymous
}

// Visitor is the current-user record the host exposes. A nil *Visitor means
// the visitor is anonymous.
type Visitor struct {
	// Username is informational only; it never gates anything.
	Username string

	// TrustLevel is the account's integer rank. Hosts that don't track it
	// report 0.
	TrustLevel int
}

// ClassOf maps a visitor record to its class.
func ClassOf(v *Visitor) VisitorClass {
	if v == nil {
		return VisitorAnonymous
	}
	return VisitorAuthenticated
}
