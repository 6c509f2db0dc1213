package logdash

import (
	"net/http"
	"strings"
	"time"

	"github.com/blutspende/logdash/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const dateOnlyLayout = "2006-01-02"

type filterValueTO struct {
	Value *string `json:"value"`
}

type pageTO struct {
	Page *int `json:"page"`
}

type dashboardOptionsTO struct {
	Levels       []Level      `json:"levels"`
	Topics       []Topic      `json:"topics"`
	DraftLevels  []string     `json:"draftLevels"`
	Navigations  []Navigation `json:"navigations"`
	ItemsPerPage int          `json:"itemsPerPage"`
}

// GetDashboard
// @Summary Get the dashboard state
// @Description Returns the filter, page window, committed logs, count, draft and last failure
// @Tags Dashboard
// @Produce json
// @Success 200 {object} Snapshot
// @Router /v1/dashboard [GET]
func (api *api) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, api.dashboard.Snapshot())
}

func (api *api) GetDashboardOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dashboardOptionsTO{
		Levels:       Levels,
		Topics:       Topics,
		DraftLevels:  DraftLevels,
		Navigations:  Navigations,
		ItemsPerPage: ItemsPerPage,
	})
}

// SetFilter
// @Summary Change one filter dimension
// @Description Sets level, topic, start-date or end-date and resets the page to 1. A null or empty date clears it.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param dimension path string true "level, topic, start-date or end-date"
// @Success 200 {object} Snapshot
// @Failure 400 {object} middleware.ClientError "Bad Request"
// @Router /v1/dashboard/filter/{dimension} [PUT]
func (api *api) SetFilter(c *gin.Context) {
	var filterValue filterValueTO
	if err := c.ShouldBindJSON(&filterValue); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrUnableToParseRequestBody)
		return
	}

	dimension := c.Param("dimension")
	ctx := c.Request.Context()
	var err error
	switch dimension {
	case "level":
		var level Level
		if level, err = ParseLevel(valueOrEmpty(filterValue.Value)); err == nil {
			err = api.dashboard.SetLevel(ctx, level)
		}
	case "topic":
		var topic Topic
		if topic, err = ParseTopic(valueOrEmpty(filterValue.Value)); err == nil {
			err = api.dashboard.SetTopic(ctx, topic)
		}
	case "start-date", "end-date":
		date, parseErr := parseDateValue(filterValue.Value)
		if parseErr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam("value"))
			return
		}
		if dimension == "start-date" {
			err = api.dashboard.SetStartDate(ctx, date)
		} else {
			err = api.dashboard.SetEndDate(ctx, date)
		}
	default:
		err = errors.Wrapf(ErrUnknownDimension, "%q", dimension)
	}
	if err != nil {
		param := "value"
		if errors.Is(err, ErrUnknownDimension) {
			param = "dimension"
		}
		abortWithError(c, err, param)
		return
	}

	c.JSON(http.StatusOK, api.dashboard.Snapshot())
}

// SetPage
// @Summary Jump to a page
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 422 {object} middleware.ClientError "Page out of range"
// @Router /v1/dashboard/page [PUT]
func (api *api) SetPage(c *gin.Context) {
	var page pageTO
	if err := c.ShouldBindJSON(&page); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrUnableToParseRequestBody)
		return
	}
	if page.Page == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam("page"))
		return
	}

	if err := api.dashboard.SetPage(c.Request.Context(), *page.Page); err != nil {
		abortWithError(c, err, "page")
		return
	}

	c.JSON(http.StatusOK, api.dashboard.Snapshot())
}

// Navigate
// @Summary Move to the first, previous, next or last page
// @Tags Dashboard
// @Produce json
// @Param direction path string true "first, previous, next or last"
// @Success 200 {object} Snapshot
// @Failure 422 {object} middleware.ClientError "Navigation disabled"
// @Router /v1/dashboard/navigate/{direction} [POST]
func (api *api) Navigate(c *gin.Context) {
	navigation, err := ParseNavigation(c.Param("direction"))
	if err != nil {
		abortWithError(c, err, "direction")
		return
	}

	if err = api.dashboard.Navigate(c.Request.Context(), navigation); err != nil {
		abortWithError(c, err, "direction")
		return
	}

	c.JSON(http.StatusOK, api.dashboard.Snapshot())
}

// RefreshDashboard re-issues the count and the log query for the current filter.
func (api *api) RefreshDashboard(c *gin.Context) {
	if err := api.dashboard.Refresh(c.Request.Context()); err != nil {
		abortWithError(c, err, "")
		return
	}

	c.Status(http.StatusAccepted)
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// parseDateValue accepts RFC 3339 instants and plain dates; nil or blank clears the bound.
func parseDateValue(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	text := strings.TrimSpace(*value)
	if date, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return &date, nil
	}
	date, err := time.Parse(dateOnlyLayout, text)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
