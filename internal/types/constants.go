package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
	RequestIDHeader     = "X-Request-Id"
	TokenCookieName     = "token"
)

type AuthenticatedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
