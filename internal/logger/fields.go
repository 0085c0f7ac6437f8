package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the keep-alive HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldInteractionID is the per-inbound-message interaction ID
	FieldInteractionID = "interaction_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldUserID is the Telegram user ID
	FieldUserID = "user_id"

	// FieldChatID is the Telegram chat ID
	FieldChatID = "chat_id"

	// FieldMeme is the matched meme name
	FieldMeme = "meme"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldAttempt is the retry attempt number
	FieldAttempt = "attempt"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
