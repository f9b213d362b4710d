package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/finbooks/backend/internal/application/report"
	"github.com/finbooks/backend/internal/interfaces/http/dto"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	financeService *reportapp.FinanceReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(financeService *reportapp.FinanceReportService) *ReportHandler {
	return &ReportHandler{
		financeService: financeService,
	}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.GET("/daily", h.GetTransactionDaily)
		transactions.GET("/monthly", h.GetTransactionMonthly)
	}

	finance := rg.Group("/finance")
	{
		finance.GET("/debt-receivable", h.GetDebtReceivable)
		finance.GET("/income", h.GetIncome)
		finance.GET("/expense", h.GetExpense)
		finance.GET("/profit-loss", h.GetProfitLoss)
	}
}

// TransactionReportRequest defines the filter for daily and monthly transaction reports
type TransactionReportRequest struct {
	UnitID    string `form:"unit_id" binding:"required,uuid"`
	Type      string `form:"type" binding:"required,oneof=sales purchase"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// BalanceReportRequest defines the filter for the debt/receivable report
type BalanceReportRequest struct {
	UnitID    string `form:"unit_id" binding:"required,uuid"`
	Type      string `form:"type" binding:"required,oneof=debt receive"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// CategoryReportRequest defines the filter for income, expense and profit/loss reports
type CategoryReportRequest struct {
	UnitID    string `form:"unit_id" binding:"required,uuid"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// TotalResponse carries a single aggregate amount
type TotalResponse struct {
	Total float64 `json:"total"`
}

// GetTransactionDaily returns per-day transaction totals for a unit,
// zero-filled over the requested date range.
func (h *ReportHandler) GetTransactionDaily(c *gin.Context) {
	var req TransactionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, start, end, ok := h.parseReportWindow(c, req.UnitID, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	result, err := h.financeService.GetTransactionDaily(c.Request.Context(), unitID, reportapp.TransactionKind(req.Type), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetTransactionMonthly returns per-month transaction totals for a unit,
// always covering all twelve months.
func (h *ReportHandler) GetTransactionMonthly(c *gin.Context) {
	var req TransactionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, start, end, ok := h.parseReportWindow(c, req.UnitID, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	result, err := h.financeService.GetTransactionMonthly(c.Request.Context(), unitID, reportapp.TransactionKind(req.Type), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetDebtReceivable returns the outstanding debt or receivable total for a unit
func (h *ReportHandler) GetDebtReceivable(c *gin.Context) {
	var req BalanceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, start, end, ok := h.parseReportWindow(c, req.UnitID, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	total, err := h.financeService.GetDebtReceivableTotal(c.Request.Context(), unitID, reportapp.BalanceKind(req.Type), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TotalResponse{Total: total})
}

// GetIncome returns the income total for a unit over a period
func (h *ReportHandler) GetIncome(c *gin.Context) {
	h.categoryReport(c, h.financeService.GetIncome)
}

// GetExpense returns the expense total for a unit over a period
func (h *ReportHandler) GetExpense(c *gin.Context) {
	h.categoryReport(c, h.financeService.GetExpense)
}

// GetProfitLoss returns the profit/loss total for a unit over a period
func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	h.categoryReport(c, h.financeService.GetProfitLoss)
}

// categoryReport runs one of the category-aggregate reports sharing the same
// request shape.
func (h *ReportHandler) categoryReport(c *gin.Context, fn func(ctx context.Context, unitID uuid.UUID, start, end time.Time) (float64, error)) {
	var req CategoryReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, start, end, ok := h.parseReportWindow(c, req.UnitID, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	total, err := fn(c.Request.Context(), unitID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TotalResponse{Total: total})
}

// parseReportWindow parses the shared unit/date-range query parameters,
// writing an error response and returning ok=false on failure.
func (h *ReportHandler) parseReportWindow(c *gin.Context, unitIDStr, startStr, endStr string) (uuid.UUID, time.Time, time.Time, bool) {
	unitID, err := uuid.Parse(unitIDStr)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "unit_id: Invalid UUID format")
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "start_date: Invalid date format, expected YYYY-MM-DD")
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "end_date: Invalid date format, expected YYYY-MM-DD")
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	return unitID, start, end, true
}
