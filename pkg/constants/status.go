package constants

const (
	StatusPending  = "pending"
	StatusUploaded = "uploaded"
	StatusDeleted  = "deleted"
	StatusOK       = "ok"
)
