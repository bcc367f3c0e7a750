package handlers

import (
	"net/http"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"

	"github.com/gin-gonic/gin"
)

// boardingHouseHandler handles HTTP requests related to boarding houses.
type boardingHouseHandler struct {
	boardingHouseService portssvc.BoardingHouseSvcFacade
}

func newBoardingHouseHandler(bhs portssvc.BoardingHouseSvcFacade) *boardingHouseHandler {
	return &boardingHouseHandler{
		boardingHouseService: bhs,
	}
}

// registerBoardingHouseRoutes registers routes for boarding houses and their
// members, plus every route nested under a specific boarding house: accounts,
// periods, the ledger, petty cash and reporting.
func registerBoardingHouseRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBoardingHouseHandler(services.BoardingHouse)

	topLevel := rg.Group("/boarding-houses")
	{
		topLevel.POST("", h.createBoardingHouse)
		topLevel.GET("", h.listUserBoardingHouses)
	}

	specific := rg.Group("/boarding-houses/:boarding_house_id")
	{
		specific.GET("", h.getBoardingHouse)
		specific.DELETE("", h.deactivateBoardingHouse)

		members := specific.Group("/users")
		{
			members.POST("", h.addUserToBoardingHouse)
			members.GET("", h.listBoardingHouseUsers)
		}

		RegisterAccountRoutes(specific, services.Account)
		registerPeriodRoutes(specific, services.Period, services.Balance)
		registerLedgerRoutes(specific, services.Ledger)
		registerPettyCashRoutes(specific, services.PettyCash, services.Ledger)
		registerReportingRoutes(specific, services.IncomeStatement, services.Payables)
	}
}

// createBoardingHouse godoc
// @Summary Create a new boarding house
// @Description Creates a boarding house; the caller becomes its admin
// @Tags boarding-houses
// @Accept  json
// @Produce  json
// @Param   boardingHouse body dto.CreateBoardingHouseRequest true "Boarding house details"
// @Success 201 {object} dto.BoardingHouseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses [post]
func (h *boardingHouseHandler) createBoardingHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBoardingHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bh, err := h.boardingHouseService.CreateBoardingHouse(c.Request.Context(), req.Name, req.Address, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create boarding house")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardingHouseResponse(bh))
}

// listUserBoardingHouses godoc
// @Summary List the caller's boarding houses
// @Description Retrieves the boarding houses the calling user belongs to
// @Tags boarding-houses
// @Produce  json
// @Success 200 {object} dto.ListBoardingHousesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses [get]
func (h *boardingHouseHandler) listUserBoardingHouses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bhs, err := h.boardingHouseService.ListUserBoardingHouses(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list boarding houses")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBoardingHousesResponse(bhs))
}

// getBoardingHouse godoc
// @Summary Get a boarding house
// @Description Retrieves details of a single boarding house; the caller must be a member
// @Tags boarding-houses
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.BoardingHouseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id} [get]
func (h *boardingHouseHandler) getBoardingHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.boardingHouseService.AuthorizeUserAction(c.Request.Context(), userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		respondServiceError(c, logger, err, "Failed to authorize user")
		return
	}

	bh, err := h.boardingHouseService.FindBoardingHouseByID(c.Request.Context(), boardingHouseID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve boarding house")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardingHouseResponse(bh))
}

// deactivateBoardingHouse godoc
// @Summary Deactivate a boarding house
// @Description Marks a boarding house inactive; admin only
// @Tags boarding-houses
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id} [delete]
func (h *boardingHouseHandler) deactivateBoardingHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.boardingHouseService.DeactivateBoardingHouse(c.Request.Context(), boardingHouseID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate boarding house")
		return
	}

	c.Status(http.StatusNoContent)
}

// addUserToBoardingHouse godoc
// @Summary Add a user to a boarding house
// @Description Grants a user membership with a role; admin only
// @Tags boarding-houses
// @Accept  json
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Param   membership body dto.AddUserToBoardingHouseRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/users [post]
func (h *boardingHouseHandler) addUserToBoardingHouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	var req dto.AddUserToBoardingHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.boardingHouseService.AddUserToBoardingHouse(c.Request.Context(), addingUserID, req.UserID, boardingHouseID, req.Role); err != nil {
		respondServiceError(c, logger, err, "Failed to add user to boarding house")
		return
	}

	c.Status(http.StatusNoContent)
}

// listBoardingHouseUsers godoc
// @Summary List members of a boarding house
// @Description Retrieves all users and their roles; caller must be a member
// @Tags boarding-houses
// @Produce  json
// @Param   boarding_house_id path string true "Boarding House ID"
// @Success 200 {object} dto.ListBoardingHouseUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /boarding-houses/{boarding_house_id}/users [get]
func (h *boardingHouseHandler) listBoardingHouseUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boardingHouseID := c.Param("boarding_house_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.boardingHouseService.ListBoardingHouseUsers(c.Request.Context(), boardingHouseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list boarding house users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBoardingHouseUsersResponse(members))
}
