package handlers

const (
	SignInPath   = "/auth/signin"
	AccountsPath = "/dashboard/accounts"

	ErrInvalidRequestBody  = "Invalid request data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)

// Outcome codes carried back to the accounts page after an OAuth round
// trip. The banner on that page is driven entirely by these values.
const (
	OAuthSuccessConnected    = "connected"
	OAuthErrorUpstream       = "oauth_error"
	OAuthErrorMissingParams  = "missing_parameters"
	OAuthErrorInvalidState   = "invalid_state"
	OAuthErrorConnectionFail = "connection_failed"
)
