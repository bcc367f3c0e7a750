package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"

	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to accounting periods and
// their account balances.
type periodHandler struct {
	periodService  portssvc.PeriodSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade, bs portssvc.BalanceSvcFacade) *periodHandler {
	return &periodHandler{
		periodService:  ps,
		balanceService: bs,
	}
}

// OpenPeriodRequest names a date whose containing monthly period should be
// opened, or returned if it already exists.
type OpenPeriodRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// registerPeriodRoutes registers period routes under a specific boarding house.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := newPeriodHandler(periodService, balanceService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.openPeriod)
		periods.GET("", h.listPeriods)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.GET("/:period_id/balances", h.getBalances)
		periods.PUT("/:period_id/accounts/:account_id/brought-down", h.setBroughtDown)
	}
}

// openPeriod godoc
// @Summary Open or fetch a monthly period
// @Description Returns the period containing the given date, creating it when it does not exist yet
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   period body OpenPeriodRequest true "Date inside the period (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/periods [post]
func (h *periodHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	var req OpenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.GetOrCreatePeriod(c.Request.Context(), boardingHouseID, date, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to open period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List periods
// @Description Retrieves all periods of a boarding house ordered by start date
// @Tags periods
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// closePeriod godoc
// @Summary Close a period
// @Description Closes a period, snapshots every account's carried-down balance and rolls it into the next period as brought-down
// @Tags periods
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   period_id path string true "Period ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period already closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/periods/{period_id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.periodService.ClosePeriod(c.Request.Context(), boardingHouseID, periodID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to close period")
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalances godoc
// @Summary Get period balances
// @Description Retrieves every account's brought-down, debit, credit and running balance for a period
// @Tags periods
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.ListBalancesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/periods/{period_id}/balances [get]
func (h *periodHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balances, err := h.balanceService.GetBalances(c.Request.Context(), boardingHouseID, periodID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalancesResponse(periodID, balances))
}

// setBroughtDown godoc
// @Summary Set an opening balance
// @Description Overrides the brought-down amount of an account for an open period. Used when migrating existing books.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   period_id path string true "Period ID"
// @Param   account_id path string true "Account ID"
// @Param   balance body dto.SetBroughtDownRequest true "Opening balance"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/periods/{period_id}/accounts/{account_id}/brought-down [put]
func (h *periodHandler) setBroughtDown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	periodID := c.Param("period_id")
	accountID := c.Param("account_id")

	var req dto.SetBroughtDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.balanceService.SetBroughtDown(c.Request.Context(), boardingHouseID, accountID, periodID, req.Amount, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to set brought-down balance")
		return
	}

	c.Status(http.StatusNoContent)
}
