package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/tinywins/internal/calendar"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/summary"
	"github.com/julianstephens/tinywins/internal/tracker"
	"github.com/julianstephens/tinywins/internal/utils"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func notFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
}

func internalError(c *gin.Context, err error) {
	logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  "internal server error",
		"detail": err.Error(),
	})
}

// history loads the log for a data endpoint. Load errors fall back to
// whatever log the reader produced; only a missing log fails the request.
func (s *Server) history(c *gin.Context) (*tracker.History, bool) {
	history, _, err := s.reader.History()
	if err != nil {
		if history == nil {
			internalError(c, err)
			return nil, false
		}
		logger.Warn("Serving default state", "path", c.Request.URL.Path, "error", err)
	}
	return history, true
}

// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	_, lastSaved, err := s.reader.History()
	status := "ok"
	code := http.StatusOK
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"uptime":    s.clock.Since(s.started).String(),
		"lastSaved": lastSaved,
	})
}

// GET /api/v1/chart?range=thisWeek|lastWeek|custom&start=&end=
func (s *Server) handleChart(c *gin.Context) {
	rng, err := summary.ParseRange(c.Query("range"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	req := summary.Request{Range: rng, Start: c.Query("start"), End: c.Query("end")}

	history, ok := s.history(c)
	if !ok {
		return
	}

	now := s.clock.Now().In(s.loc)
	details := summary.Aggregate(history.Entries(), req, now)
	resp := gin.H{
		"range":   rng,
		"points":  summary.Series(details),
		"details": details,
		"totals":  summary.Summarize(details),
	}
	if start, end, ok := req.Bounds(now); ok {
		resp["start"] = start.Format(constants.DateFormat)
		resp["end"] = end.Format(constants.DateFormat)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/entries
func (s *Server) handleEntries(c *gin.Context) {
	history, ok := s.history(c)
	if !ok {
		return
	}
	entries := history.Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GET /api/v1/entries/:date
func (s *Server) handleEntry(c *gin.Context) {
	date := c.Param("date")
	if !utils.IsLocalDate(date) {
		badRequest(c, "date must be a valid YYYY-MM-DD")
		return
	}

	history, ok := s.history(c)
	if !ok {
		return
	}
	entry, ok := history.FindByDate(date)
	if !ok {
		notFound(c, "entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /api/v1/calendar/:year/:month with month 1-12
func (s *Server) handleCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		badRequest(c, "year must be between 1 and 9999")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		badRequest(c, "month must be between 1 and 12")
		return
	}

	history, ok := s.history(c)
	if !ok {
		return
	}

	m := calendar.Month{Year: year, Index: month - 1}
	cells := m.Project(history.Entries())
	c.JSON(http.StatusOK, gin.H{
		"month": m.String(),
		"title": m.Title(),
		"cells": cells,
		"weeks": len(calendar.Weeks(cells)),
	})
}
