package ticket

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
	"github.com/HIMU202508/TicketingSystem/internal/shared/utils"
)

const (
	cacheCompletedList = "public, max-age=5"
	cacheNoStore       = "no-store"
)

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	generateNumUC  usecases.GenerateTicketNumberExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	limits         usecases.PageLimits
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	generateNumUC usecases.GenerateTicketNumberExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	limits usecases.PageLimits,
	logger logger.Interface,
) *TicketHandler {
	if limits.Default <= 0 {
		limits.Default = constants.DefaultTicketPageSize
	}
	if limits.Max <= 0 {
		limits.Max = constants.MaxTicketPageSize
	}
	return &TicketHandler{
		createTicketUC: createTicketUC,
		generateNumUC:  generateNumUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		updateTicketUC: updateTicketUC,
		deleteTicketUC: deleteTicketUC,
		limits:         limits,
		logger:         logger,
	}
}

// CreateTicket handles POST /api/tickets
// @Summary Submit a repair ticket
// @Description Public submission form. The ticket starts pending and unassigned.
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GenerateTicketNumber handles GET /api/tickets/number?device=...
// The proposed number is not reserved.
// @Summary Propose a ticket number
// @Tags tickets
// @Produce json
// @Param device query string true "Device type"
// @Success 200 {object} utils.APIResponse{data=dto.TicketNumberDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/number [get]
func (h *TicketHandler) GenerateTicketNumber(c *gin.Context) {
	query := usecases.GenerateTicketNumberQuery{DeviceType: c.Query("device")}

	result, err := h.generateNumUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(constants.HeaderCacheControl, cacheNoStore)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /api/tickets. A ticket_number query turns it into an exact lookup.
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param ticket_number query string false "Exact ticket number lookup"
// @Param status query string false "Status filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param export query bool false "Exact count for exports"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	if number := strings.TrimSpace(c.Query("ticket_number")); number != "" {
		h.getByNumber(c, number)
		return
	}

	pagination := utils.ParsePagination(c, h.limits.Default, h.limits.Max)
	query := usecases.ListTicketsQuery{
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     pagination.Page,
		PageSize: pagination.Limit,
		Export:   c.Query("export") == "true",
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if strings.EqualFold(query.Status, vo.StatusCompleted.String()) {
		c.Header(constants.HeaderCacheControl, cacheCompletedList)
	} else {
		c.Header(constants.HeaderCacheControl, cacheNoStore)
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) getByNumber(c *gin.Context, number string) {
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{Number: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(constants.HeaderCacheControl, cacheNoStore)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /api/tickets/:id
// @Summary Get ticket by ID
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(constants.HeaderCacheControl, cacheNoStore)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PATCH /api/tickets/:id
// @Summary Update ticket
// @Description Partial update. Omitted keys keep their value, explicit null clears nullable fields.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param ticket body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result.Ticket)
}

// DeleteTicket handles DELETE /api/tickets/:id
// @Summary Delete ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{TicketID: ticketID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted successfully", nil)
}

func parseTicketID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}
