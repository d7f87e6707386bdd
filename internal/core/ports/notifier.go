package ports

import "context"

// Notifier sends customer-facing e-mail. Fire-and-forget from the core's
// perspective: callers log failures but never roll back on them.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
