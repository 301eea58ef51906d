package search

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httperr "github.com/corsa-lab/project-corsa/internal/core/errors"
	"github.com/corsa-lab/project-corsa/internal/metrics"
)

// RegisterRoutes registers the search API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/offers", s.HandleSearch)
}

// HandleSearch handles GET /api/offers.
//
// Mandatory query parameters: regionID, timeRangeStart, timeRangeEnd,
// numberDays, sortOrder, page, pageSize, priceRangeWidth,
// minFreeKilometerWidth. Optional: minNumberSeats, minPrice, maxPrice,
// carType, onlyVollkasko, minFreeKilometer.
func (s *Service) HandleSearch(c *gin.Context) {
	req, err := parseSearchRequest(c)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid_query").Inc()
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			metrics.SearchesTotal.WithLabelValues("invalid_query").Inc()
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid search query",
				Details:   err.Error(),
			})
			return
		}

		slog.Error("Search failed", "error", err)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to execute search",
			Details:   err.Error(),
		})
		return
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, resp)
}

// parseSearchRequest reads the query string by hand. Zero is a legitimate
// value for most parameters (regionID 0 is the hierarchy root, epoch 0 a
// valid instant), so absence cannot be modeled with binding defaults.
func parseSearchRequest(c *gin.Context) (SearchRequest, error) {
	var req SearchRequest
	var err error

	if req.Filters.RegionID, err = requiredInt64(c, "regionID"); err != nil {
		return req, err
	}
	if req.Filters.TimeRangeStart, err = requiredInt64(c, "timeRangeStart"); err != nil {
		return req, err
	}
	if req.Filters.TimeRangeEnd, err = requiredInt64(c, "timeRangeEnd"); err != nil {
		return req, err
	}
	if req.Filters.NumberDays, err = requiredInt64(c, "numberDays"); err != nil {
		return req, err
	}

	sortOrder, ok := c.GetQuery("sortOrder")
	if !ok {
		return req, fmt.Errorf("sortOrder is required")
	}
	req.SortOrder = sortOrder

	if req.Page, err = requiredInt(c, "page"); err != nil {
		return req, err
	}
	if req.PageSize, err = requiredInt(c, "pageSize"); err != nil {
		return req, err
	}
	if req.PriceRangeWidth, err = requiredInt64(c, "priceRangeWidth"); err != nil {
		return req, err
	}
	if req.MinFreeKilometerWidth, err = requiredInt(c, "minFreeKilometerWidth"); err != nil {
		return req, err
	}

	if req.Filters.MinNumberSeats, err = optionalInt(c, "minNumberSeats"); err != nil {
		return req, err
	}
	if req.Filters.MinPrice, err = optionalInt64(c, "minPrice"); err != nil {
		return req, err
	}
	if req.Filters.MaxPrice, err = optionalInt64(c, "maxPrice"); err != nil {
		return req, err
	}
	if carType, ok := c.GetQuery("carType"); ok {
		req.Filters.CarType = &carType
	}
	if req.Filters.OnlyVollkasko, err = optionalBool(c, "onlyVollkasko"); err != nil {
		return req, err
	}
	if req.Filters.MinFreeKilometer, err = optionalInt(c, "minFreeKilometer"); err != nil {
		return req, err
	}

	return req, nil
}

func requiredInt64(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func requiredInt(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func optionalInt64(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func optionalBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &v, nil
}
