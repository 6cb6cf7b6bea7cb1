package handler

import (
	"bytes"
	"fmt"
	"net/http"

	reportapp "github.com/bricksflow/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the dashboard and profit and loss reports
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard godoc
// @ID           factoryDashboard
// @Summary      Factory dashboard
// @Description  Stock per brick type, monthly revenue, receivables, weekly payroll, material stock and subscription state
// @Tags         dashboard
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/factory/{factory_id} [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// ProfitLoss godoc
// @ID           profitLossReport
// @Summary      Profit and loss report
// @Description  Defaults to the current week. format=csv downloads the report as a spreadsheet.
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        format query string false "json or csv" Enums(json, csv)
// @Success      200 {object} APIResponse[reportapp.ProfitLossResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/factory/{factory_id}/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query reportapp.ReportQuery
	if !h.bindQuery(c, &query) {
		return
	}

	if query.Format != "csv" {
		report, err := h.reports.ProfitLoss(c.Request.Context(), userID, factoryID, query)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, report)
		return
	}

	// buffered so a failure halfway still gets a proper error response
	var buf bytes.Buffer
	filename, err := h.reports.WriteProfitLossCSV(c.Request.Context(), userID, factoryID, query, &buf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
