package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// pathID reads the numeric :id segment. A non-numeric id cannot resolve to
// any row, so callers treat the error as not-found.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}

// parseDate accepts both RFC3339 timestamps and plain YYYY-MM-DD dates,
// which is what the web client submits from forms.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// dateQuery reads an optional date query parameter. On a malformed value it
// writes a 400 response and reports failure.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	t, err := parseDate(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format for '" + name + "'"})
		return nil, false
	}
	return &t, true
}

// limitQuery reads the optional limit parameter. A malformed value is a
// 400, not silently ignored.
func limitQuery(c *gin.Context) (int, bool) {
	value := c.Query("limit")
	if value == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid number for 'limit'"})
		return 0, false
	}
	return limit, true
}

// formInt reads an optional integer form field. Empty means unrecorded and
// maps to NULL; an unparsable value is a 400, never silently dropped.
func formInt(c *gin.Context, name string) (*int, bool) {
	value := c.PostForm(name)
	if value == "" {
		return nil, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid number for '" + name + "'"})
		return nil, false
	}
	return &n, true
}

func formFloat(c *gin.Context, name string) (*float64, bool) {
	value := c.PostForm(name)
	if value == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid number for '" + name + "'"})
		return nil, false
	}
	return &f, true
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// serviceError maps service sentinel errors onto the response taxonomy.
// Anything unexpected is logged in full and surfaced as a bare 500.
func serviceError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this " + strings.ToLower(resource)})
	default:
		log.Printf("%s handler error: %v", strings.ToLower(resource), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
