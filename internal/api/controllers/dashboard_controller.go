package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/response_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Onboarding dashboard (admin)
// @Description Account and survey KPIs, new user and submission series, and the most selected behaviors
// @Tags Dashboard
// @Produce json
// @Param start     query string false "RFC3339 start"
// @Param end       query string false "RFC3339 end"
// @Param last_days query int    false "Lookback in days, instead of start/end. Default 30"
// @Param interval  query string false "day | week | month (default: day)"
// @Param tz        query string false "IANA timezone for bucketing (default: UTC)"
// @Success 200 {object} utils.APIResponse{data=response_models.DashboardReport}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	rng, err := rangeFromQuery(c, time.Now().UTC())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), rng)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

// rangeFromQuery reads the report window. Missing bounds are left zero for the
// service to default; last_days is resolved against now.
func rangeFromQuery(c *gin.Context, now time.Time) (response_models.TimeRange, error) {
	rng := response_models.TimeRange{
		Interval: c.DefaultQuery("interval", "day"),
		Timezone: c.DefaultQuery("tz", "UTC"),
	}
	switch rng.Interval {
	case "day", "week", "month":
	default:
		return rng, errors.New("interval must be one of: day, week, month")
	}
	if _, err := time.LoadLocation(rng.Timezone); err != nil {
		return rng, errors.New("tz must be an IANA timezone name")
	}

	start, end, lastDays := c.Query("start"), c.Query("end"), c.Query("last_days")
	if lastDays != "" {
		if start != "" || end != "" {
			return rng, errors.New("provide either last_days or start/end (not both)")
		}
		days, err := strconv.Atoi(lastDays)
		if err != nil || days <= 0 {
			return rng, errors.New("last_days must be a positive integer")
		}
		rng.End = now
		rng.Start = now.AddDate(0, 0, -days)
		return rng, nil
	}

	var err error
	if start != "" {
		if rng.Start, err = time.Parse(time.RFC3339, start); err != nil {
			return rng, errors.New("start must be RFC3339, e.g. 2025-10-01T00:00:00Z")
		}
	}
	if end != "" {
		if rng.End, err = time.Parse(time.RFC3339, end); err != nil {
			return rng, errors.New("end must be RFC3339, e.g. 2025-10-19T23:59:59Z")
		}
	}
	return rng, nil
}
