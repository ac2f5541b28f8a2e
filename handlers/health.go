package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) HealthHandler(c *gin.Context) {
	history := "disabled"
	if a.History.Enabled() {
		history = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Tripwise API",
		"snapshot": a.Store.Path(),
		"history":  history,
	})
}
