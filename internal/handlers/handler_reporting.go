package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for income statements and the
// accounts payable and receivable reports.
type reportingHandler struct {
	statementService portssvc.IncomeStatementSvcFacade
	payablesService  portssvc.PayablesSvcFacade
}

func newReportingHandler(ss portssvc.IncomeStatementSvcFacade, ps portssvc.PayablesSvcFacade) *reportingHandler {
	return &reportingHandler{
		statementService: ss,
		payablesService:  ps,
	}
}

// registerReportingRoutes registers reporting routes under a specific
// boarding house.
func registerReportingRoutes(rg *gin.RouterGroup, statementService portssvc.IncomeStatementSvcFacade, payablesService portssvc.PayablesSvcFacade) {
	h := newReportingHandler(statementService, payablesService)

	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.generateIncomeStatement)
		reports.GET("/creditors", h.creditorsReport)
		reports.GET("/prepayments", h.prepaymentsReport)
		reports.GET("/overdue", h.overduePayments)
	}

	statements := rg.Group("/statements")
	{
		statements.POST("", h.saveStatement)
		statements.GET("", h.listSavedStatements)
		statements.GET("/:statement_id", h.loadSavedStatement)
	}
}

// registerConsolidatedReportRoutes registers the cross-house reporting
// routes at the API root. These aggregate every boarding house the
// caller administers.
func registerConsolidatedReportRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReportingHandler(services.IncomeStatement, services.Payables)

	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.generateConsolidatedStatement)
	}
	statements := rg.Group("/statements")
	{
		statements.GET("", h.listConsolidatedStatements)
	}
}

// parseDateRange reads startDate and endDate query params in YYYY-MM-DD form.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid endDate, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not precede startDate"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// generateIncomeStatement godoc
// @Summary Generate an income statement
// @Description Computes revenue and expense lines for a boarding house over a date range
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/reports/income-statement [get]
func (h *reportingHandler) generateIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	statement, err := h.statementService.Generate(c.Request.Context(), dto.GenerateStatementParams{
		BoardingHouseID: boardingHouseID,
		StartDate:       start,
		EndDate:         end,
	}, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(statement))
}

// generateConsolidatedStatement godoc
// @Summary Generate a consolidated income statement
// @Description Computes revenue and expense lines across all boarding houses the caller administers
// @Tags reports
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) generateConsolidatedStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	statement, err := h.statementService.Generate(c.Request.Context(), dto.GenerateStatementParams{
		Consolidated: true,
		StartDate:    start,
		EndDate:      end,
	}, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate consolidated income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(statement))
}

// saveStatement godoc
// @Summary Save an income statement
// @Description Generates an income statement for the given range and stores it as a named snapshot
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   statement body dto.SaveStatementRequest true "Statement name and range"
// @Success 201 {object} dto.SavedStatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/statements [post]
func (h *reportingHandler) saveStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	var req dto.SaveStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	saved, err := h.statementService.Save(c.Request.Context(), boardingHouseID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save statement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavedStatementResponse(saved))
}

// listSavedStatements godoc
// @Summary List saved statements
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.ListSavedStatementsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/statements [get]
func (h *reportingHandler) listSavedStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	statements, err := h.statementService.ListSaved(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list saved statements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSavedStatementsResponse(statements))
}

// listConsolidatedStatements godoc
// @Summary List saved consolidated statements
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ListSavedStatementsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements [get]
func (h *reportingHandler) listConsolidatedStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	statements, err := h.statementService.ListSaved(c.Request.Context(), "", userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list saved statements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSavedStatementsResponse(statements))
}

// loadSavedStatement godoc
// @Summary Load a saved statement
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   statement_id path string true "Statement ID"
// @Success 200 {object} dto.SavedStatementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/statements/{statement_id} [get]
func (h *reportingHandler) loadSavedStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	statementID := c.Param("statement_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	saved, err := h.statementService.LoadSaved(c.Request.Context(), boardingHouseID, statementID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load saved statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavedStatementResponse(saved))
}

// creditorsReport godoc
// @Summary Accounts payable by supplier
// @Description Groups unpaid and partially paid expenses by supplier with totals and a status per creditor
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.CreditorsReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/reports/creditors [get]
func (h *reportingHandler) creditorsReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.payablesService.CreditorsReport(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build creditors report")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditorsReportResponse(report))
}

// prepaymentsReport godoc
// @Summary Student prepayments
// @Description Groups payments by student and classifies each credit balance
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.PrepaymentsReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/reports/prepayments [get]
func (h *reportingHandler) prepaymentsReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.payablesService.PrepaymentsReport(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build prepayments report")
		return
	}

	c.JSON(http.StatusOK, dto.ToPrepaymentsReportResponse(report))
}

// overduePayments godoc
// @Summary Overdue payments
// @Description Lists unpaid and partially paid expenses past their due date, oldest first
// @Tags reports
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.OverduePaymentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/reports/overdue [get]
func (h *reportingHandler) overduePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rows, err := h.payablesService.OverduePayments(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build overdue payments report")
		return
	}

	c.JSON(http.StatusOK, dto.ToOverduePaymentsResponse(rows))
}
