package entity

// Notification is the provider-neutral content of one push message.
type Notification struct {
	Title string
	Body  string
	Sound string
	Data  map[string]any
}

// Receipt statuses reported by push providers.
const (
	ReceiptStatusOK    = "ok"
	ReceiptStatusError = "error"
)

// Receipt is a provider acknowledgment for one submitted message.
type Receipt struct {
	ID      string         `json:"id,omitempty"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// OK reports whether the provider accepted the message.
func (r Receipt) OK() bool {
	return r.Status == ReceiptStatusOK
}
