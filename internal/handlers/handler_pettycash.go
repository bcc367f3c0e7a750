package handlers

import (
	"net/http"

	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"

	"github.com/gin-gonic/gin"
)

// pettyCashHandler handles HTTP requests for petty cash users and their
// float movements.
type pettyCashHandler struct {
	pettyCashService portssvc.PettyCashSvcFacade
	ledgerService    portssvc.LedgerSvcFacade
}

func newPettyCashHandler(ps portssvc.PettyCashSvcFacade, ls portssvc.LedgerSvcFacade) *pettyCashHandler {
	return &pettyCashHandler{
		pettyCashService: ps,
		ledgerService:    ls,
	}
}

// registerPettyCashRoutes registers petty cash routes under a specific
// boarding house. Float movements post through the ledger so the cash
// account and the user's balance stay in step.
func registerPettyCashRoutes(rg *gin.RouterGroup, pettyCashService portssvc.PettyCashSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newPettyCashHandler(pettyCashService, ledgerService)

	users := rg.Group("/petty-cash-users")
	{
		users.POST("", h.registerPettyCashUser)
		users.GET("", h.listPettyCashUsers)
		users.GET("/:petty_cash_user_id", h.getPettyCashUser)
		users.PUT("/:petty_cash_user_id", h.updatePettyCashUser)
		users.DELETE("/:petty_cash_user_id", h.removePettyCashUser)

		users.POST("/:petty_cash_user_id/issuances", h.postIssuance)
		users.POST("/:petty_cash_user_id/reductions", h.postReduction)
	}
}

// registerPettyCashUser godoc
// @Summary Register a petty cash user
// @Description Creates a petty cash user with a monthly limit and a zero float
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   user body dto.CreatePettyCashUserRequest true "Petty cash user details"
// @Success 201 {object} dto.PettyCashUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users [post]
func (h *pettyCashHandler) registerPettyCashUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	var req dto.CreatePettyCashUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pcUser, err := h.pettyCashService.RegisterUser(c.Request.Context(), boardingHouseID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register petty cash user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPettyCashUserResponse(pcUser))
}

// listPettyCashUsers godoc
// @Summary List petty cash users
// @Tags petty-cash
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.ListPettyCashUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users [get]
func (h *pettyCashHandler) listPettyCashUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pcUsers, err := h.pettyCashService.ListUsers(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list petty cash users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPettyCashUsersResponse(pcUsers))
}

// getPettyCashUser godoc
// @Summary Get a petty cash user
// @Tags petty-cash
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   petty_cash_user_id path string true "Petty Cash User ID"
// @Success 200 {object} dto.PettyCashUserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users/{petty_cash_user_id} [get]
func (h *pettyCashHandler) getPettyCashUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	pettyCashUserID := c.Param("petty_cash_user_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pcUser, err := h.pettyCashService.GetUser(c.Request.Context(), boardingHouseID, pettyCashUserID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve petty cash user")
		return
	}

	c.JSON(http.StatusOK, dto.ToPettyCashUserResponse(pcUser))
}

// updatePettyCashUser godoc
// @Summary Update a petty cash user
// @Description Updates a petty cash user's name, monthly limit or status. The balance moves only through issuances and reductions.
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   petty_cash_user_id path string true "Petty Cash User ID"
// @Param   user body dto.UpdatePettyCashUserRequest true "Fields to update"
// @Success 200 {object} dto.PettyCashUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users/{petty_cash_user_id} [put]
func (h *pettyCashHandler) updatePettyCashUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	pettyCashUserID := c.Param("petty_cash_user_id")

	var req dto.UpdatePettyCashUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pcUser, err := h.pettyCashService.UpdateUser(c.Request.Context(), boardingHouseID, pettyCashUserID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update petty cash user")
		return
	}

	c.JSON(http.StatusOK, dto.ToPettyCashUserResponse(pcUser))
}

// removePettyCashUser godoc
// @Summary Remove a petty cash user
// @Description Deletes a petty cash user without ledger history; users with history are deactivated instead
// @Tags petty-cash
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   petty_cash_user_id path string true "Petty Cash User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users/{petty_cash_user_id} [delete]
func (h *pettyCashHandler) removePettyCashUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	pettyCashUserID := c.Param("petty_cash_user_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.pettyCashService.RemoveUser(c.Request.Context(), boardingHouseID, pettyCashUserID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove petty cash user")
		return
	}

	c.Status(http.StatusNoContent)
}

// postIssuance godoc
// @Summary Issue petty cash float
// @Description Posts an issuance entry that increases the user's float; rejected when it would exceed the monthly limit
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   petty_cash_user_id path string true "Petty Cash User ID"
// @Param   movement body dto.PettyCashMovementRequest true "Issuance details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Monthly limit exceeded or period closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users/{petty_cash_user_id}/issuances [post]
func (h *pettyCashHandler) postIssuance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	pettyCashUserID := c.Param("petty_cash_user_id")

	var req dto.PettyCashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.PostPettyCashIssuance(c.Request.Context(), boardingHouseID, pettyCashUserID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue petty cash")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// postReduction godoc
// @Summary Return petty cash float
// @Description Posts a reduction entry that decreases the user's float; rejected when the float would go negative
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   petty_cash_user_id path string true "Petty Cash User ID"
// @Param   movement body dto.PettyCashMovementRequest true "Reduction details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Float would go negative or period closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/petty-cash-users/{petty_cash_user_id}/reductions [post]
func (h *pettyCashHandler) postReduction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")
	pettyCashUserID := c.Param("petty_cash_user_id")

	var req dto.PettyCashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.PostPettyCashReduction(c.Request.Context(), boardingHouseID, pettyCashUserID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reduce petty cash")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}
