package middlewares

const (
	ctxEmailKey     = "auth.email"
	ctxRequestIDKey = "request_id"
)
