package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/organize-activities-api/internal/dto"
	"github.com/noah-isme/organize-activities-api/internal/middleware"
	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/internal/service"
	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
	"github.com/noah-isme/organize-activities-api/pkg/future"
	"github.com/noah-isme/organize-activities-api/pkg/response"
)

type activityService interface {
	AllActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	CurrentActivities(orgID int) future.Future[[]models.CampaignActivity]
	CampaignActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	ArchivedActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	ArchivedStandaloneActivities(orgID int) future.Future[[]models.CampaignActivity]
	ActivityOverview(orgID, campaignID int) future.Future[models.ActivityOverview]
}

type activityExporter interface {
	Export(ctx context.Context, req service.ExportRequest) (*service.ExportResult, error)
}

type sourceRefresher interface {
	RefreshOrganization(ctx context.Context, orgID int) ([]string, error)
}

// ActivityHandler exposes the aggregated activity views of an organization.
type ActivityHandler struct {
	activities activityService
	exporter   activityExporter
	refresher  sourceRefresher
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(activities activityService, exporter activityExporter, refresher sourceRefresher) *ActivityHandler {
	return &ActivityHandler{activities: activities, exporter: exporter, refresher: refresher}
}

// RegisterRoutes mounts the activity endpoints on rg.
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orgs := rg.Group("/orgs/:orgId")
	orgs.GET("/activities", h.List)
	orgs.GET("/activities/current", h.Current)
	orgs.GET("/activities/archived", h.Archived)
	orgs.GET("/activities/archived/standalone", h.ArchivedStandalone)
	orgs.GET("/activities/overview", h.Overview)
	orgs.GET("/activities/export", h.Export)
	orgs.POST("/activities/refresh", h.Refresh)
	orgs.GET("/campaigns/:campaignId/activities", h.Campaign)
	orgs.GET("/campaigns/:campaignId/overview", h.CampaignOverview)
}

// List godoc
// @Summary List all activities of an organization
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Param campaignId query int false "Only activities of this campaign"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	orgID, campaignID, ok := h.orgAndCampaignQuery(c)
	if !ok {
		return
	}
	respondActivities(c, time.Now(), h.activities.AllActivities(orgID, campaignID))
}

// Current godoc
// @Summary List activities that are still visible
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities/current [get]
func (h *ActivityHandler) Current(c *gin.Context) {
	orgID, err := idParam(c, "orgId")
	if err != nil {
		response.Error(c, err)
		return
	}
	respondActivities(c, time.Now(), h.activities.CurrentActivities(orgID))
}

// Archived godoc
// @Summary List activities whose visibility window has ended
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Param campaignId query int false "Only activities of this campaign"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities/archived [get]
func (h *ActivityHandler) Archived(c *gin.Context) {
	orgID, campaignID, ok := h.orgAndCampaignQuery(c)
	if !ok {
		return
	}
	respondActivities(c, time.Now(), h.activities.ArchivedActivities(orgID, campaignID))
}

// ArchivedStandalone godoc
// @Summary List archived activities without a campaign
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities/archived/standalone [get]
func (h *ActivityHandler) ArchivedStandalone(c *gin.Context) {
	orgID, err := idParam(c, "orgId")
	if err != nil {
		response.Error(c, err)
		return
	}
	respondActivities(c, time.Now(), h.activities.ArchivedStandaloneActivities(orgID))
}

// Overview godoc
// @Summary Today, tomorrow and this week at a glance
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Param campaignId query int false "Only activities of this campaign"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities/overview [get]
func (h *ActivityHandler) Overview(c *gin.Context) {
	orgID, campaignID, ok := h.orgAndCampaignQuery(c)
	if !ok {
		return
	}
	respondOverview(c, time.Now(), h.activities.ActivityOverview(orgID, campaignID))
}

// Campaign godoc
// @Summary List current activities of a campaign
// @Tags Campaigns
// @Produce json
// @Param orgId path int true "Organization ID"
// @Param campaignId path int true "Campaign ID"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/campaigns/{campaignId}/activities [get]
func (h *ActivityHandler) Campaign(c *gin.Context) {
	orgID, campaignID, ok := h.orgAndCampaignPath(c)
	if !ok {
		return
	}
	respondActivities(c, time.Now(), h.activities.CampaignActivities(orgID, campaignID))
}

// CampaignOverview godoc
// @Summary Overview scoped to one campaign
// @Tags Campaigns
// @Produce json
// @Param orgId path int true "Organization ID"
// @Param campaignId path int true "Campaign ID"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/campaigns/{campaignId}/overview [get]
func (h *ActivityHandler) CampaignOverview(c *gin.Context) {
	orgID, campaignID, ok := h.orgAndCampaignPath(c)
	if !ok {
		return
	}
	respondOverview(c, time.Now(), h.activities.ActivityOverview(orgID, campaignID))
}

// Export godoc
// @Summary Download activities as CSV or PDF
// @Tags Activities
// @Produce text/csv
// @Produce application/pdf
// @Param orgId path int true "Organization ID"
// @Param scope query string false "all, current, archived or standalone" default(current)
// @Param format query string false "csv or pdf" default(csv)
// @Param campaignId query int false "Only activities of this campaign"
// @Success 200 {file} file
// @Success 202 {object} response.Envelope "sources still loading"
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /orgs/{orgId}/activities/export [get]
func (h *ActivityHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	orgID, campaignID, ok := h.orgAndCampaignQuery(c)
	if !ok {
		return
	}
	req := service.ExportRequest{
		OrgID:      orgID,
		CampaignID: campaignID,
		Scope:      c.DefaultQuery("scope", service.ExportScopeCurrent),
		Format:     c.DefaultQuery("format", "csv"),
	}
	result, err := h.exporter.Export(c.Request.Context(), req)
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrSourcesLoading.Code {
			middleware.SetSourceStatus(c, "loading")
			response.Accepted(c, responseMeta(c, time.Now()))
			return
		}
		response.Error(c, err)
		return
	}
	response.File(c, result.Filename, result.ContentType, result.Payload)
}

// Refresh godoc
// @Summary Reload the activity sources of an organization
// @Tags Activities
// @Produce json
// @Param orgId path int true "Organization ID"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /orgs/{orgId}/activities/refresh [post]
func (h *ActivityHandler) Refresh(c *gin.Context) {
	if h.refresher == nil {
		response.Error(c, appErrors.ErrQueueStopped)
		return
	}
	orgID, err := idParam(c, "orgId")
	if err != nil {
		response.Error(c, err)
		return
	}
	sources, err := h.refresher.RefreshOrganization(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, dto.RefreshResponse{OrgID: orgID, Sources: sources})
}

func (h *ActivityHandler) orgAndCampaignQuery(c *gin.Context) (int, int, bool) {
	orgID, err := idParam(c, "orgId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	campaignID, err := optionalIDQuery(c, "campaignId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return orgID, campaignID, true
}

func (h *ActivityHandler) orgAndCampaignPath(c *gin.Context) (int, int, bool) {
	orgID, err := idParam(c, "orgId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	campaignID, err := idParam(c, "campaignId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return orgID, campaignID, true
}

func respondActivities(c *gin.Context, start time.Time, result future.Future[[]models.CampaignActivity]) {
	if !respondPending(c, start, result.IsLoading, result.Err) {
		return
	}
	activities, _ := result.Value()
	middleware.SetSourceStatus(c, "resolved")
	middleware.SetMeta(c, "count", len(activities))
	response.JSON(c, http.StatusOK, dto.NewActivityList(activities), responseMeta(c, start))
}

func respondOverview(c *gin.Context, start time.Time, result future.Future[models.ActivityOverview]) {
	if !respondPending(c, start, result.IsLoading, result.Err) {
		return
	}
	overview, _ := result.Value()
	middleware.SetSourceStatus(c, "resolved")
	response.JSON(c, http.StatusOK, dto.NewActivityOverview(overview), responseMeta(c, start))
}

// respondPending writes the loading or error response and reports whether the
// caller should go on with a resolved payload.
func respondPending(c *gin.Context, start time.Time, loading bool, err error) bool {
	switch {
	case loading:
		middleware.SetSourceStatus(c, "loading")
		response.Accepted(c, responseMeta(c, start))
		return false
	case err != nil:
		middleware.SetSourceStatus(c, "errored")
		response.Error(c, appErrors.Upstream("activity sources", err))
		return false
	}
	return true
}

func responseMeta(c *gin.Context, start time.Time) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}
