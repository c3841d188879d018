package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prasetyodt/railbooking/internal/mockapi"
)

type ScheduleHandler struct {
	store *mockapi.Store
}

func NewScheduleHandler(store *mockapi.Store) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

func (h *ScheduleHandler) Register(router *gin.RouterGroup) {
	router.GET("/stations", h.stations)
	router.GET("/stations/all", h.stationsAll)
	router.GET("/schedules", h.search)
}

// stations mirrors the backend's paginated shape: a page object inside
// the data envelope.
func (h *ScheduleHandler) stations(c *gin.Context) {
	stations := h.store.Stations(c.Query("city"))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"current_page": 1,
		"data":         stations,
		"total":        len(stations),
	}})
}

func (h *ScheduleHandler) stationsAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.Stations("")})
}

func (h *ScheduleHandler) search(c *gin.Context) {
	origin := c.Query("origin_id")
	destination := c.Query("destination_id")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "origin_id and destination_id are required"})
		return
	}

	adults := 0
	if v := c.Query("adults"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid adults"})
			return
		}
		adults = parsed
	}

	schedules := h.store.SearchSchedules(origin, destination, c.Query("departure_date"), adults)
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}
