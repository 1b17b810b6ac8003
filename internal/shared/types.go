package shared

// Task types handled by cmd/worker
const (
	TypeNotifyOrderAdmin   = "order:notify_admin"
	TypeOrderPendingDigest = "order:pending_digest"
)

// Queue names (priority weights are configured in cmd/worker)
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)
