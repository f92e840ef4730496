package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

// maxImportFileSize caps uploaded workbooks at 10 MiB.
const maxImportFileSize = 10 << 20

type glAccountHandler struct {
	glService portssvc.GLAccountSvcFacade
}

func newGLAccountHandler(gs portssvc.GLAccountSvcFacade) *glAccountHandler {
	return &glAccountHandler{glService: gs}
}

// registerGLAccountRoutes registers GL account routes under an organization group.
func registerGLAccountRoutes(org *gin.RouterGroup, glService portssvc.GLAccountSvcFacade) {
	h := newGLAccountHandler(glService)

	accounts := org.Group("/gl-accounts")
	{
		accounts.GET("", h.listGLAccounts)
		accounts.POST("", h.createGLAccount)
		accounts.GET("/tree", h.getGLAccountTree)
		accounts.POST("/import", h.importGLAccounts)
		accounts.GET("/:glAccountID", h.getGLAccount)
		accounts.PATCH("/:glAccountID", h.updateGLAccount)
	}
}

// listGLAccounts godoc
// @Summary List GL accounts
// @Description Lists the organization's GL accounts ordered by code
// @Tags gl-accounts
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param level query int false "Level (1, 2 or 3)"
// @Param type query string false "Type (Inkomsten, Uitgaven, Balans)"
// @Param active query bool false "Only active accounts"
// @Success 200 {object} dto.ListGLAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts [get]
func (h *glAccountHandler) listGLAccounts(c *gin.Context) {
	var params dto.ListGLAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, err := h.glService.ListGLAccounts(c.Request.Context(), c.Param(orgParam), userID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list GL accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListGLAccountsResponse{GLAccounts: accounts})
}

// getGLAccountTree godoc
// @Summary GL account hierarchy
// @Description Nests accounts by parent code. Accounts whose parent is missing are roots with orphan=true.
// @Tags gl-accounts
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.GLAccountTreeResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts/tree [get]
func (h *glAccountHandler) getGLAccountTree(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roots, err := h.glService.GetGLAccountTree(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondError(c, err, "Failed to build GL account tree")
		return
	}
	c.JSON(http.StatusOK, dto.GLAccountTreeResponse{Roots: roots})
}

// getGLAccount godoc
// @Summary Get a GL account
// @Tags gl-accounts
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param glAccountID path string true "GL account ID"
// @Success 200 {object} domain.GLAccount
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts/{glAccountID} [get]
func (h *glAccountHandler) getGLAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	account, err := h.glService.GetGLAccount(c.Request.Context(), c.Param(orgParam), c.Param("glAccountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve GL account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// createGLAccount godoc
// @Summary Create a GL account
// @Description Level, parent code and type are derived from the code. Malformed codes are rejected.
// @Tags gl-accounts
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param account body dto.CreateGLAccountRequest true "GL account"
// @Success 201 {object} domain.GLAccount
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts [post]
func (h *glAccountHandler) createGLAccount(c *gin.Context) {
	var req dto.CreateGLAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	account, err := h.glService.CreateGLAccount(c.Request.Context(), c.Param(orgParam), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create GL account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// updateGLAccount godoc
// @Summary Update a GL account
// @Description Changes the name or active flag. Code and classification cannot change.
// @Tags gl-accounts
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param glAccountID path string true "GL account ID"
// @Param account body dto.UpdateGLAccountRequest true "Fields to change"
// @Success 200 {object} domain.GLAccount
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts/{glAccountID} [patch]
func (h *glAccountHandler) updateGLAccount(c *gin.Context) {
	var req dto.UpdateGLAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	account, err := h.glService.UpdateGLAccount(c.Request.Context(), c.Param(orgParam), c.Param("glAccountID"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update GL account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// importGLAccounts godoc
// @Summary Import GL accounts from Excel
// @Description Upserts the rows of an .xlsx chart of accounts by code. Rows without a code are skipped.
// @Tags gl-accounts
// @Accept multipart/form-data
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/gl-accounts/import [post]
func (h *glAccountHandler) importGLAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportFileSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A workbook must be uploaded in the 'file' field"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Only .xlsx workbooks are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	logger.Info("Importing GL accounts",
		slog.String("file_name", fileHeader.Filename),
		slog.Int64("file_size", fileHeader.Size))

	result, err := h.glService.ImportGLAccounts(c.Request.Context(), c.Param(orgParam), userID, file)
	if err != nil {
		respondError(c, err, "Failed to import GL accounts")
		return
	}
	c.JSON(http.StatusOK, result)
}
