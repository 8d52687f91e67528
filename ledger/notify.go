package ledger

// Notification is the plain data record handed to the sink. Icons and
// rendering belong to whatever consumes it (toast UI, webhook, log line).
type Notification struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Variant string `json:"variant"` // "default" or "destructive"
}

// Notifier is fire-and-forget: the ledger never depends on delivery.
type Notifier interface {
	Notify(n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
