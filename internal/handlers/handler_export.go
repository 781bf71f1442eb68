package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportHandler struct {
	exportService portssvc.ExportSvc
}

func registerExportRoutes(rg *gin.RouterGroup, es portssvc.ExportSvc) {
	h := &exportHandler{exportService: es}

	export := rg.Group("/export")
	{
		export.GET("/csv", h.exportCSV)
		export.GET("/xlsx", h.exportXLSX)
	}
}

// exportCSV godoc
// @Summary Export transactions as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/csv [get]
func (h *exportHandler) exportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.exportService.ExportCSV)
}

// exportXLSX godoc
// @Summary Export transactions as an Excel workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/xlsx [get]
func (h *exportHandler) exportXLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, h.exportService.ExportXLSX)
}

// export renders into memory first so a failure can still answer with an error status.
func (h *exportHandler) export(c *gin.Context, ext, contentType string,
	render func(ctx context.Context, id domain.Identity, w io.Writer) error) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}
	filename := fmt.Sprintf("transactions-%s.%s", time.Now().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
