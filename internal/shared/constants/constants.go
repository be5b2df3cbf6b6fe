package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXSignature    = "X-Signature"
	HeaderXEventName    = "X-Event-Name"

	// Content Types
	ContentTypeJSON    = "application/json"
	ContentTypeJSONAPI = "application/vnd.api+json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableSubscriptions = "subscriptions"
	TableOrders        = "orders"
	TableWebhookEvents = "webhook_events"

	// Redis channels
	ChannelSubscriptionChange = "masterly:subscription:change"
)
