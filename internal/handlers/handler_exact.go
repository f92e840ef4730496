package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

const (
	isoDateLayout     = "2006-01-02"
	exactCallbackPath = "/settings/exact"
	callbackRateLimit = "20-M"
)

// exactHandler serves the Exact Online connection and synchronization endpoints.
// Every answer uses the dto.ExactResponse envelope.
type exactHandler struct {
	connection  portssvc.ExactConnectionSvc
	sync        portssvc.ExactSyncSvc
	frontendURL string
}

func newExactHandler(conn portssvc.ExactConnectionSvc, sync portssvc.ExactSyncSvc, frontendURL string) *exactHandler {
	return &exactHandler{connection: conn, sync: sync, frontendURL: strings.TrimRight(frontendURL, "/")}
}

// registerExactCallbackRoute registers the public OAuth redirect target. Exact calls it
// without our bearer token; the signed state identifies organization and user.
func registerExactCallbackRoute(r *gin.Engine, conn portssvc.ExactConnectionSvc, frontendURL string) error {
	h := newExactHandler(conn, nil, frontendURL)

	limit, err := middleware.NewMemoryRateLimit(callbackRateLimit)
	if err != nil {
		return err
	}
	r.GET("/api/v1/exact/callback", limit, h.callback)
	return nil
}

// registerExactRoutes registers the organization-scoped Exact routes.
func registerExactRoutes(org *gin.RouterGroup, conn portssvc.ExactConnectionSvc, sync portssvc.ExactSyncSvc) {
	h := newExactHandler(conn, sync, "")

	exact := org.Group("/exact")
	{
		exact.GET("/connect", h.connect)
		exact.GET("/status", h.status)
		exact.DELETE("/connection", h.disconnect)
		exact.GET("/test-connection", h.testConnection)
		exact.POST("/sync-gl-accounts", h.syncGLAccounts)
		exact.POST("/sync-transactions", h.syncTransactions)
		exact.GET("/sync-logs", h.listSyncLogs)
	}
}

// connect godoc
// @Summary Start the Exact Online connection
// @Description Returns the Exact Online consent URL. Admins only.
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ExactResponse{data=dto.ExactConnectResponse}
// @Failure 403 {object} dto.ExactResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/connect [get]
func (h *exactHandler) connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	authURL, err := h.connection.BuildAuthorizationURL(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondExactError(c, err, "Failed to build Exact Online authorization URL")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK("Authorization URL created", dto.ExactConnectResponse{AuthorizationURL: authURL}))
}

// callback godoc
// @Summary Exact Online OAuth callback
// @Description Verifies state, exchanges the code and redirects to the frontend.
// @Tags exact
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state"
// @Success 302
// @Router /exact/callback [get]
func (h *exactHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	query := url.Values{}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("Exact Online authorization denied", slog.String("error", errParam))
		query.Set("status", "error")
		query.Set("error", errParam)
		c.Redirect(http.StatusFound, h.frontendURL+exactCallbackPath+"?"+query.Encode())
		return
	}

	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, dto.ExactFailed("code and state are required"))
		return
	}

	orgID, err := h.connection.CompleteAuthorization(c.Request.Context(), code, state)
	if err != nil {
		logger.Warn("Exact Online callback failed", slog.String("error", err.Error()))
		query.Set("status", "error")
		query.Set("error", exactErrorMessage(err))
	} else {
		query.Set("status", "connected")
		query.Set(orgParam, orgID)
	}
	c.Redirect(http.StatusFound, h.frontendURL+exactCallbackPath+"?"+query.Encode())
}

// status godoc
// @Summary Exact Online connection status
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ExactResponse{data=domain.ExactConnectionStatus}
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/status [get]
func (h *exactHandler) status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status, err := h.connection.GetStatus(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondExactError(c, err, "Failed to read Exact Online status")
		return
	}
	msg := "Not connected to Exact Online"
	if status.Connected {
		msg = "Connected to Exact Online"
	}
	c.JSON(http.StatusOK, dto.ExactOK(msg, status))
}

// disconnect godoc
// @Summary Disconnect Exact Online
// @Description Removes the current token. Token history is kept. Admins only.
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ExactResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/connection [delete]
func (h *exactHandler) disconnect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.connection.Disconnect(c.Request.Context(), c.Param(orgParam), userID); err != nil {
		respondExactError(c, err, "Failed to disconnect Exact Online")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK("Exact Online disconnected", nil))
}

// testConnection godoc
// @Summary Test the Exact Online connection
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ExactResponse{data=domain.ExactConnectionInfo}
// @Failure 400 {object} dto.ExactResponse "Not connected"
// @Failure 401 {object} dto.ExactResponse "Exact Online session expired"
// @Failure 502 {object} dto.ExactResponse "Exact Online rejected the request"
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/test-connection [get]
func (h *exactHandler) testConnection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	info, err := h.connection.TestConnection(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondExactError(c, err, "Exact Online connection test failed")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK("Connection to Exact Online works", info))
}

// syncGLAccounts godoc
// @Summary Synchronize GL accounts from Exact Online
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ExactResponse{data=dto.SyncResult}
// @Failure 401 {object} dto.ExactResponse "Exact Online session expired"
// @Failure 409 {object} dto.ExactResponse "A sync is already running"
// @Failure 502 {object} dto.ExactResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/sync-gl-accounts [post]
func (h *exactHandler) syncGLAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	log, err := h.sync.SyncGLAccounts(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondExactError(c, err, "GL account sync failed")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK(syncMessage(log), toSyncResult(log)))
}

// syncTransactions godoc
// @Summary Synchronize transaction lines from Exact Online
// @Tags exact
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param period body dto.SyncTransactionsRequest true "Date range (YYYY-MM-DD or RFC 3339, inclusive)"
// @Success 200 {object} dto.ExactResponse{data=dto.SyncResult}
// @Failure 400 {object} dto.ExactResponse
// @Failure 401 {object} dto.ExactResponse "Exact Online session expired"
// @Failure 409 {object} dto.ExactResponse "A sync is already running"
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/sync-transactions [post]
func (h *exactHandler) syncTransactions(c *gin.Context) {
	var req dto.SyncTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ExactFailed("startDate and endDate are required"))
		return
	}
	start, errStart := parseSyncDate(req.StartDate)
	end, errEnd := parseSyncDate(req.EndDate)
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, dto.ExactFailed("startDate and endDate must be ISO dates (YYYY-MM-DD or RFC 3339)"))
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	log, err := h.sync.SyncTransactions(c.Request.Context(), c.Param(orgParam), userID, start, end)
	if err != nil {
		respondExactError(c, err, "Transaction sync failed")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK(syncMessage(log), toSyncResult(log)))
}

// parseSyncDate accepts a calendar date or an RFC 3339 timestamp and keeps
// only the date part of the latter.
func parseSyncDate(value string) (time.Time, error) {
	if t, err := time.Parse(isoDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// listSyncLogs godoc
// @Summary Sync history
// @Tags exact
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ExactResponse{data=dto.ListSyncLogsResponse}
// @Security BearerAuth
// @Router /organizations/{organizationID}/exact/sync-logs [get]
func (h *exactHandler) listSyncLogs(c *gin.Context) {
	var params dto.ListSyncLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ExactFailed("Invalid query parameters: "+err.Error()))
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, next, err := h.sync.ListSyncLogs(c.Request.Context(), c.Param(orgParam), userID, params.Limit, params.NextToken)
	if err != nil {
		respondExactError(c, err, "Failed to list sync logs")
		return
	}
	c.JSON(http.StatusOK, dto.ExactOK("Sync history", dto.ListSyncLogsResponse{SyncLogs: logs, NextToken: next}))
}

func toSyncResult(log *domain.SyncLog) dto.SyncResult {
	return dto.SyncResult{
		SyncLogID: log.SyncLogID,
		Status:    string(log.Status),
		Processed: log.Processed,
		Created:   log.Created,
		Updated:   log.Updated,
		Failed:    log.Failed,
	}
}

func syncMessage(log *domain.SyncLog) string {
	if log.Status == domain.SyncStatusPartial {
		msg := "Synchronization finished with failures"
		if log.ErrorMessage != "" {
			msg += ": " + log.ErrorMessage
		}
		return msg
	}
	return "Synchronization finished"
}
