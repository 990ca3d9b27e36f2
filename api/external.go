package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeboard/internal/store"
)

func coordinates(c *gin.Context) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, &store.ValidationError{Field: "lat", Reason: "expected a latitude between -90 and 90"}
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, &store.ValidationError{Field: "lon", Reason: "expected a longitude between -180 and 180"}
	}
	return lat, lon, nil
}

// currentWeather proxies the open-meteo forecast for the caller's
// position. The client sends coordinates; the hour slice is picked
// server-side from the local clock.
func (h *Handler) currentWeather(c *gin.Context) {
	lat, lon, err := coordinates(c)
	if err != nil {
		fail(c, err)
		return
	}

	cond, err := h.Weather.CurrentConditions(c.Request.Context(), lat, lon, time.Local)
	if err != nil {
		zap.L().Warn("weather fetch failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		notify(c, http.StatusBadGateway, "failure", "Could not fetch the weather right now", nil)
		return
	}
	c.JSON(http.StatusOK, cond)
}

// locality resolves coordinates to a town name for the weather card
// header.
func (h *Handler) locality(c *gin.Context) {
	lat, lon, err := coordinates(c)
	if err != nil {
		fail(c, err)
		return
	}

	name, err := h.Geocoder.Locality(c.Request.Context(), lat, lon)
	if err != nil {
		zap.L().Warn("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"locality": "Unknown"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locality": name})
}
