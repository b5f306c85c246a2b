package worker

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// Pool sizing defaults
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)
