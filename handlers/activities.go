package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CityCoordinatesHandler looks up a city record (with geo coordinates) by name.
func (a *API) CityCoordinatesHandler(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing keyword parameter"})
		return
	}

	cities, err := a.Client.CityCoordinates(keyword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", cities)
}

// ActivitiesHandler finds points of interest inside a bounding box.
func (a *API) ActivitiesHandler(c *gin.Context) {
	north, err1 := strconv.ParseFloat(c.Query("north"), 64)
	south, err2 := strconv.ParseFloat(c.Query("south"), 64)
	east, err3 := strconv.ParseFloat(c.Query("east"), 64)
	west, err4 := strconv.ParseFloat(c.Query("west"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "north, south, east and west must be numeric"})
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	pois, err := a.Client.SearchActivities(north, south, east, west, c.Query("categories"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", pois)
}
