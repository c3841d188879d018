package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/mockapi"
)

// AdminHandler serves the back-office CRUD endpoints. The router mounts
// it behind the admin-role middleware.
type AdminHandler struct {
	store *mockapi.Store
}

type stationRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	City      string `json:"city" binding:"required"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type trainRequest struct {
	Name  string `json:"name" binding:"required"`
	Class string `json:"class" binding:"required"`
}

type routeRequest struct {
	OriginID      int64 `json:"origin_id" binding:"required"`
	DestinationID int64 `json:"destination_id" binding:"required"`
}

type scheduleRequest struct {
	TrainID       int64   `json:"train_id" binding:"required"`
	RouteID       int64   `json:"route_id" binding:"required"`
	DepartureTime string  `json:"departure_time" binding:"required"`
	ArrivalTime   string  `json:"arrival_time" binding:"required"`
	SeatAvailable int     `json:"seat_available"`
	Price         float64 `json:"price"`
}

func NewAdminHandler(store *mockapi.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/users", h.users)
	router.GET("/users/:id", h.user)

	router.GET("/transactions", h.transactions)

	router.POST("/stations", h.createStation)
	router.PUT("/stations/:id", h.updateStation)
	router.DELETE("/stations/:id", h.deleteStation)

	router.GET("/trains", h.trains)
	router.POST("/trains", h.createTrain)
	router.PUT("/trains/:id", h.updateTrain)
	router.DELETE("/trains/:id", h.deleteTrain)

	router.GET("/routes", h.routes)
	router.POST("/routes", h.createRoute)
	router.DELETE("/routes/:id", h.deleteRoute)

	router.GET("/schedules/all", h.schedules)
	router.POST("/schedules", h.createSchedule)
	router.PUT("/schedules/:id", h.updateSchedule)
	router.DELETE("/schedules/:id", h.deleteSchedule)
}

func (h *AdminHandler) users(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.Users()})
}

func (h *AdminHandler) user(c *gin.Context) {
	user, ok := h.store.UserByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// transactions mirrors the backend's paginated shape, like /stations.
func (h *AdminHandler) transactions(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid page"})
			return
		}
		page = parsed
	}

	txs, total := h.store.Transactions(page)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"current_page": page,
		"data":         txs,
		"total":        total,
	}})
}

func (h *AdminHandler) createStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	station := h.store.CreateStation(domain.Station{
		Name:      req.Name,
		Code:      req.Code,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	c.JSON(http.StatusCreated, gin.H{"data": station})
}

func (h *AdminHandler) updateStation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	station, err := h.store.UpdateStation(id, domain.Station{
		Name:      req.Name,
		Code:      req.Code,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": station})
}

func (h *AdminHandler) deleteStation(c *gin.Context) {
	h.deleteByID(c, h.store.DeleteStation)
}

func (h *AdminHandler) trains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.Trains()})
}

func (h *AdminHandler) createTrain(c *gin.Context) {
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	train := h.store.CreateTrain(domain.Train{Name: req.Name, Class: req.Class})
	c.JSON(http.StatusCreated, gin.H{"data": train})
}

func (h *AdminHandler) updateTrain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	train, err := h.store.UpdateTrain(id, domain.Train{Name: req.Name, Class: req.Class})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": train})
}

func (h *AdminHandler) deleteTrain(c *gin.Context) {
	h.deleteByID(c, h.store.DeleteTrain)
}

func (h *AdminHandler) routes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.Routes()})
}

func (h *AdminHandler) createRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	route, err := h.store.CreateRoute(req.OriginID, req.DestinationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": route})
}

func (h *AdminHandler) deleteRoute(c *gin.Context) {
	h.deleteByID(c, h.store.DeleteRoute)
}

func (h *AdminHandler) schedules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.AllSchedules()})
}

func (h *AdminHandler) createSchedule(c *gin.Context) {
	sched, ok := h.bindSchedule(c)
	if !ok {
		return
	}
	created, err := h.store.CreateSchedule(sched)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *AdminHandler) updateSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sched, ok := h.bindSchedule(c)
	if !ok {
		return
	}
	updated, err := h.store.UpdateSchedule(id, sched)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (h *AdminHandler) deleteSchedule(c *gin.Context) {
	h.deleteByID(c, h.store.DeleteSchedule)
}

func (h *AdminHandler) bindSchedule(c *gin.Context) (domain.Schedule, bool) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return domain.Schedule{}, false
	}
	departure, err := mockapi.ParseScheduleTime(req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return domain.Schedule{}, false
	}
	arrival, err := mockapi.ParseScheduleTime(req.ArrivalTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return domain.Schedule{}, false
	}
	return domain.Schedule{
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		SeatAvailable: req.SeatAvailable,
		Price:         req.Price,
	}, true
}

func (h *AdminHandler) deleteByID(c *gin.Context, remove func(int64) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := remove(id); err != nil {
		if errors.Is(err, mockapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}
