package ports

import "context"

// Push is one notification message addressed to a single device token.
// OrderID travels in the data payload so the receiving app can deep-link
// to the order.
type Push struct {
	To      string
	Title   string
	Body    string
	OrderID string
}

// PushSender delivers push notifications to devices. Implementations talk
// to an external push gateway; delivery is best effort and a send failure
// must never affect the business operation that triggered it.
type PushSender interface {
	Send(ctx context.Context, push Push) error
}
