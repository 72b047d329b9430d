package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/services"
)

type CueHandler struct {
	cueService services.CueSessionService
}

func NewCueHandler(cueService services.CueSessionService) *CueHandler {
	return &CueHandler{cueService: cueService}
}

func (ch *CueHandler) StartSession(c *gin.Context) {
	var req struct {
		Context cueing.Context `json:"context"`
	}
	// Body is optional; an empty session context is fine.
	_ = c.ShouldBindJSON(&req)

	if err := ch.cueService.StartSession(c.Request.Context(), req.Context); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ch *CueHandler) EndSession(c *gin.Context) {
	if err := ch.cueService.EndSession(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ch *CueHandler) IngestTrigger(c *gin.Context) {
	var req services.TriggerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cue, accepted, err := ch.cueService.IngestTrigger(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": accepted, "cue": cue})
}

func (ch *CueHandler) Ready(c *gin.Context) {
	cues, err := ch.cueService.Ready(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cues": cues})
}

func (ch *CueHandler) Action(c *gin.Context) {
	cueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cue id"})
		return
	}
	var req cueing.ActionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cue, err := ch.cueService.Action(c.Request.Context(), cueID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cue == nil {
		// Unknown id or unknown action: deliberately not an error.
		c.JSON(http.StatusOK, gin.H{"applied": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "cue": cue})
}

func (ch *CueHandler) GetPreferences(c *gin.Context) {
	prefs, err := ch.cueService.GetPreferences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (ch *CueHandler) UpdatePreferences(c *gin.Context) {
	var req cueing.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.cueService.UpdatePreferences(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ch *CueHandler) GetAnalytics(c *gin.Context) {
	analytics, err := ch.cueService.GetAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}
