package event

// Log messages
const (
	LogMsgEventDropped          = "Event dropped, dispatch queue full"
	LogMsgPublishRetrying       = "Failed to publish event, initiating async retry"
	LogMsgPublishRecovered      = "Successfully published event after retry"
	LogMsgPublishRetryFailed    = "Event publish retry failed"
	LogMsgDeadLetterOpenFailed  = "Failed to open dead letter file"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter file"
	LogMsgDeadLetterWritten     = "Event written to dead letter queue"
)
