package model

import "time"

// NotifyAdminPayload is the asynq payload of the order:notify_admin task.
type NotifyAdminPayload struct {
	Recipient string  `json:"recipient"`
	Summary   Summary `json:"summary"`
}

// PendingDigestPayload is the asynq payload of the periodic order:pending_digest task.
type PendingDigestPayload struct {
	Recipient  string        `json:"recipient"`
	StaleAfter time.Duration `json:"stale_after"`
	Limit      int           `json:"limit"`
}
