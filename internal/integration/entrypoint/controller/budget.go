package controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/budget-api/internal/application/usecase/budget"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/dto"
)

// BudgetsPath is the collection path budgets are served under.
const BudgetsPath = "/api/v1/budgets"

// BudgetController handles budget endpoints.
type BudgetController struct {
	service *budget.Service
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(service *budget.Service) *BudgetController {
	return &BudgetController{
		service: service,
	}
}

// Register handles POST /budgets requests.
func (c *BudgetController) Register(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingBudgetFields), err)
		return
	}

	created, err := c.service.RegisterNewBudget(ctx.Request.Context(), budget.RegisterBudgetInput{
		Title:            req.Title,
		Limit:            *req.Limit,
		TypeOfBudget:     entity.TypeOfBudget(req.TypeOfBudget),
		MaxSingleExpense: req.MaxSingleExpense,
		OwnerUserID:      callerID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Header("Location", budgetLocation(created.ID))
	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(created))
}

// Get handles GET /budgets/:budgetId requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	found, exists, err := c.service.GetBudgetByID(ctx.Request.Context(), ctx.Param("budgetId"), callerID)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	if !exists {
		respondBudgetNotFound(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(found))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var query dto.BudgetPageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		code := domainerror.ErrCodeInvalidPageIndex
		if _, badSize := dto.BindingErrorDetails(err)["size"]; badSize {
			code = domainerror.ErrCodeInvalidPageSize
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid paging parameters",
			Code:  string(code),
		})
		return
	}

	page, err := c.service.FindAllByPage(ctx.Request.Context(), callerID, query.ToPageRequest())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetPageResponse(page))
}

// Status handles GET /budgets/:budgetId/status requests.
func (c *BudgetController) Status(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	status, err := c.service.GetBudgetStatus(ctx.Request.Context(), ctx.Param("budgetId"), callerID)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusResponse(status))
}

// Update handles PUT /budgets/:budgetId requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingBudgetFields), err)
		return
	}

	updated, err := c.service.UpdateBudgetByID(ctx.Request.Context(), budget.UpdateBudgetInput{
		ID:               ctx.Param("budgetId"),
		Title:            req.Title,
		Limit:            *req.Limit,
		TypeOfBudget:     entity.TypeOfBudget(req.TypeOfBudget),
		MaxSingleExpense: req.MaxSingleExpense,
		CallerUserID:     callerID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(updated))
}

// Patch handles PATCH /budgets/:budgetId requests.
func (c *BudgetController) Patch(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.PatchBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingBudgetFields), err)
		return
	}

	input := budget.PatchBudgetInput{
		ID:               ctx.Param("budgetId"),
		Title:            valueobject.FromPtr(req.Title),
		Limit:            valueobject.FromPtr(req.Limit),
		MaxSingleExpense: valueobject.FromPtr(req.MaxSingleExpense),
		Timestamp:        valueobject.FromPtr(req.Timestamp),
		CallerUserID:     callerID,
	}
	if req.TypeOfBudget != nil {
		input.TypeOfBudget = valueobject.Some(entity.TypeOfBudget(*req.TypeOfBudget))
	}

	patched, exists, err := c.service.UpdateBudgetContent(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	if !exists {
		respondBudgetNotFound(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(patched))
}

// Delete handles DELETE /budgets/:budgetId requests. Deleting a budget that
// does not exist succeeds.
func (c *BudgetController) Delete(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteBudgetByID(ctx.Request.Context(), ctx.Param("budgetId"), callerID); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondBudgetNotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error: "budget not found",
		Code:  string(domainerror.ErrCodeBudgetNotFound),
	})
}

func budgetLocation(id valueobject.BudgetID) string {
	return BudgetsPath + "/" + url.PathEscape(id.String())
}
