package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/service/entry"
)

// EntryService is what the write endpoints need.
type EntryService interface {
	SubmitCost(ctx context.Context, sub models.CostSubmission) (*models.EntryReceipt, error)
	SubmitSale(ctx context.Context, sub models.SaleSubmission) (*models.EntryReceipt, error)
	SubmitHarvest(ctx context.Context, sub models.HarvestSubmission) (*models.EntryReceipt, error)
	SubmitDeposit(ctx context.Context, sub models.DepositSubmission) (*models.EntryReceipt, error)
	SubmitWithdrawal(ctx context.Context, sub models.WithdrawalSubmission) (*models.EntryReceipt, error)
	AddCustomer(ctx context.Context, c models.Customer) (*models.EntryReceipt, error)
}

// EntryHandler accepts form submissions.
type EntryHandler struct {
	svc    EntryService
	logger *zap.Logger
}

// NewEntryHandler constructs the HTTP handler adapter.
func NewEntryHandler(svc EntryService, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{svc: svc, logger: logger}
}

// Submit answers POST /api/:domain.
func (h *EntryHandler) Submit(c *gin.Context) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch domain {
	case models.DomainCosts:
		var sub models.CostSubmission
		if h.bind(c, &sub) {
			h.respond(c, domain)(h.svc.SubmitCost(ctx, sub))
		}
	case models.DomainSales:
		var sub models.SaleSubmission
		if h.bind(c, &sub) {
			h.respond(c, domain)(h.svc.SubmitSale(ctx, sub))
		}
	case models.DomainHarvests:
		var sub models.HarvestSubmission
		if h.bind(c, &sub) {
			h.respond(c, domain)(h.svc.SubmitHarvest(ctx, sub))
		}
	case models.DomainDeposits:
		var sub models.DepositSubmission
		if h.bind(c, &sub) {
			h.respond(c, domain)(h.svc.SubmitDeposit(ctx, sub))
		}
	case models.DomainWithdrawals:
		var sub models.WithdrawalSubmission
		if h.bind(c, &sub) {
			h.respond(c, domain)(h.svc.SubmitWithdrawal(ctx, sub))
		}
	}
}

// AddCustomer answers POST /api/customers.
func (h *EntryHandler) AddCustomer(c *gin.Context) {
	var customer models.Customer
	if h.bind(c, &customer) {
		h.respond(c, "customers")(h.svc.AddCustomer(c.Request.Context(), customer))
	}
}

func (h *EntryHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *EntryHandler) respond(c *gin.Context, domain models.Domain) func(*models.EntryReceipt, error) {
	return func(receipt *models.EntryReceipt, err error) {
		var invalid *entry.ValidationError
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, receipt)
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": entry.ErrInvalidSubmission.Error(), "problems": invalid.Problems})
		case errors.Is(err, entry.ErrWriteFailed):
			h.logger.Error("entry not saved", zap.String("domain", string(domain)), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "entry was not saved, please resubmit"})
		default:
			h.logger.Error("entry failed", zap.String("domain", string(domain)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save entry"})
		}
	}
}
