package declinerecord

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
	"github.com/HIMU202508/TicketingSystem/internal/shared/utils"
)

const (
	cacheUnfiltered = "public, max-age=30"
	cacheFiltered   = "public, max-age=10"

	actionStats = "stats"
)

// ActionRequest is the body of POST /api/declined-tickets.
type ActionRequest struct {
	Action string `json:"action" validate:"required"`
}

type Handler struct {
	listUC  usecases.ListDeclineRecordsExecutor
	statsUC usecases.GetDeclineStatsExecutor
	limits  usecases.PageLimits
	logger  logger.Interface
}

func NewHandler(
	listUC usecases.ListDeclineRecordsExecutor,
	statsUC usecases.GetDeclineStatsExecutor,
	limits usecases.PageLimits,
	logger logger.Interface,
) *Handler {
	if limits.Default <= 0 {
		limits.Default = constants.DefaultDeclinePageSize
	}
	if limits.Max <= 0 {
		limits.Max = constants.MaxDeclinePageSize
	}
	return &Handler{
		listUC:  listUC,
		statsUC: statsUC,
		limits:  limits,
		logger:  logger,
	}
}

// List handles GET /api/declined-tickets
// @Summary List decline records
// @Tags declined-tickets
// @Produce json
// @Security Bearer
// @Param search query string false "Matches ticket number, device, owner or reason"
// @Param facility query string false "Facility"
// @Param declined_by query string false "Decliner name (rejected_by is accepted too)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param export query bool false "Exact count for exports"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /declined-tickets [get]
func (h *Handler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c, h.limits.Default, h.limits.Max)

	declinedBy := c.Query("declined_by")
	if declinedBy == "" {
		declinedBy = c.Query("rejected_by")
	}

	query := usecases.ListDeclineRecordsQuery{
		Search:     strings.TrimSpace(c.Query("search")),
		Facility:   strings.TrimSpace(c.Query("facility")),
		DeclinedBy: strings.TrimSpace(declinedBy),
		Page:       pagination.Page,
		PageSize:   pagination.Limit,
		Export:     c.Query("export") == "true",
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Filtered || query.Export {
		c.Header(constants.HeaderCacheControl, cacheFiltered)
	} else {
		c.Header(constants.HeaderCacheControl, cacheUnfiltered)
	}

	utils.ListSuccessResponse(c, result.Records, result.Total, result.Page, result.PageSize)
}

// Stats handles GET /api/declined-tickets/stats
// @Summary Decline statistics
// @Tags declined-tickets
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.DeclineStatsDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /declined-tickets/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	h.respondStats(c)
}

// Action handles POST /api/declined-tickets. Only the "stats" action exists.
// @Summary Run a decline log action
// @Tags declined-tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param action body ActionRequest true "Action"
// @Success 200 {object} utils.APIResponse{data=dto.DeclineStatsDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /declined-tickets [post]
func (h *Handler) Action(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for decline action", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if req.Action != actionStats {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid action"))
		return
	}

	h.respondStats(c)
}

func (h *Handler) respondStats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(constants.HeaderCacheControl, cacheFiltered)
	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
