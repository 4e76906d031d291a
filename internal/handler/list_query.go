package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agrodesk/internal/listing"
	"agrodesk/internal/service"
)

const queryDateLayout = "2006-01-02"

// parseListOptions reads the list query parameters: search, status, from, to,
// page, page_size, refresh. Unparseable numbers and dates fall back to the
// unconstrained value rather than erroring, matching how the list screens
// treat partial input.
func parseListOptions(c *gin.Context) service.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	return service.ListOptions{
		Filter:   parseFilter(c),
		Page:     page,
		PageSize: listing.ClampPageSize(pageSize),
		Refresh:  c.Query("refresh") == "true",
	}
}

func parseFilter(c *gin.Context) listing.FilterState {
	f := listing.FilterState{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if from, err := time.Parse(queryDateLayout, c.Query("from")); err == nil {
		f.From = from
	}
	if to, err := time.Parse(queryDateLayout, c.Query("to")); err == nil {
		f.To = to
	}
	return f
}
