package http

import (
	declineHandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/declinerecord"
	ticketHandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds the HTTP handler instances used by the application.
type allHandlers struct {
	ticketHandler  *ticketHandlers.TicketHandler
	declineHandler *declineHandlers.Handler
}
