package common

// Session cookie names shared by the server handlers and the console.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"
