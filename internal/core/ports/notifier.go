package ports

import "context"

// PushPayload is the message body handed to the push transport.
type PushPayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	TaskID string `json:"task_id"`
}

// Mailer and Pusher are best-effort transports: they report success as a
// boolean and never surface transport errors to the caller.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, text, html string) bool
}

type Pusher interface {
	SendPush(ctx context.Context, ownerID string, payload PushPayload) bool
}
