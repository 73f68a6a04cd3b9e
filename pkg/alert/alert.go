package alert

type AlertKind string

const (
	KindWarning    AlertKind = "warning"
	KindExceeded   AlertKind = "exceeded"
	KindProjection AlertKind = "projection"
)

// Alert is a derived warning about a budget's trajectory. Alerts are
// computed fresh on every call and never stored.
type Alert struct {
	Kind     AlertKind
	BudgetID int
	Category string
	Message  string
	// Progress is the budget's progress percentage at the time the alert
	// was computed.
	Progress float64
}
