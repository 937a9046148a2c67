package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage = 1

	// Ticket listing
	DefaultTicketPageSize = 10
	MaxTicketPageSize     = 200

	// Decline record listing
	DefaultDeclinePageSize = 20
	MaxDeclinePageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderCacheControl  = "Cache-Control"

	ContextKeySubject   = "subject"
	ContextKeyRole      = "role"
	ContextKeyRequestID = "request_id"

	TableTickets         = "tickets"
	TableDeclinedTickets = "declined_tickets"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgTicketNotFound      = "Ticket not found"
)
