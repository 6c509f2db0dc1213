package logdash

import (
	"net/http"

	"github.com/blutspende/logdash/middleware"

	"github.com/gin-gonic/gin"
)

type draftTO struct {
	Open  bool     `json:"open"`
	Draft LogDraft `json:"draft"`
}

func (api *api) draftResponse() draftTO {
	snapshot := api.dashboard.Snapshot()
	return draftTO{
		Open:  snapshot.DraftOpen,
		Draft: snapshot.Draft,
	}
}

func (api *api) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, api.draftResponse())
}

// OpenDraft starts a fresh, empty draft.
func (api *api) OpenDraft(c *gin.Context) {
	if err := api.dashboard.OpenDraft(c.Request.Context()); err != nil {
		abortWithError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, api.draftResponse())
}

// UpdateDraft
// @Summary Replace the draft fields
// @Tags Draft
// @Accept json
// @Produce json
// @Success 200 {object} draftTO
// @Failure 400 {object} middleware.ClientError "Bad Request"
// @Router /v1/draft [PUT]
func (api *api) UpdateDraft(c *gin.Context) {
	var draft LogDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidRequestBody)
		return
	}

	if err := api.dashboard.UpdateDraft(c.Request.Context(), draft); err != nil {
		abortWithError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, api.draftResponse())
}

func (api *api) CancelDraft(c *gin.Context) {
	if err := api.dashboard.CancelDraft(c.Request.Context()); err != nil {
		abortWithError(c, err, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// SubmitDraft
// @Summary Submit the open draft to the log store
// @Description The draft is validated synchronously. The outcome of the post arrives as LOG_ADDED or OPERATION_FAILED event.
// @Tags Draft
// @Produce json
// @Success 202 "Accepted"
// @Failure 400 {object} middleware.ClientError "Invalid metadata"
// @Failure 409 {object} middleware.ClientError "No draft open"
// @Router /v1/draft/submit [POST]
func (api *api) SubmitDraft(c *gin.Context) {
	if err := api.dashboard.SubmitDraft(c.Request.Context()); err != nil {
		abortWithError(c, err, "metadata")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}
