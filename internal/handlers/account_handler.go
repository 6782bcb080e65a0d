package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minhasfinancas/internal/currency"
	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/services"
)

// AccountHandler handles account-related requests
type AccountHandler struct {
	accountService services.AccountServicer
	audit          services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService services.AccountServicer, audit services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, audit: audit}
}

// CreateAccountRequest represents the request payload for creating an account.
// Balances are centavos.
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	AccountTypeID  uint    `json:"account_type_id" binding:"required"`
	InitialBalance int64   `json:"initial_balance"`
	Color          string  `json:"color" binding:"omitempty,hex_color"`
	Icon           string  `json:"icon"`
	BankID         *string `json:"bank_id" binding:"omitempty,bank_id"`
	IncludeInTotal *bool   `json:"include_in_total"`
}

// UpdateAccountRequest represents the request payload for updating an account.
// Omitted fields are unchanged; an empty bank_id clears the bank reference.
type UpdateAccountRequest struct {
	Name           *string `json:"name"`
	AccountTypeID  *uint   `json:"account_type_id"`
	InitialBalance *int64  `json:"initial_balance"`
	Color          *string `json:"color" binding:"omitempty,hex_color"`
	Icon           *string `json:"icon"`
	BankID         *string `json:"bank_id"`
	IncludeInTotal *bool   `json:"include_in_total"`
}

// AccountResponse represents an account in the response
type AccountResponse struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	AccountTypeID     uint    `json:"account_type_id"`
	AccountTypeName   string  `json:"account_type_name,omitempty"`
	InitialBalance    int64   `json:"initial_balance"`
	CurrentBalance    int64   `json:"current_balance"`
	FormattedBalance  string  `json:"formatted_balance"`
	Color             string  `json:"color"`
	Icon              string  `json:"icon"`
	BankID            *string `json:"bank_id,omitempty"`
	IncludeInTotal    bool    `json:"include_in_total"`
	Active            bool    `json:"active"`
}

func newAccountResponse(a *models.Account) AccountResponse {
	resp := AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		AccountTypeID:    a.AccountTypeID,
		InitialBalance:   a.InitialBalance,
		CurrentBalance:   a.CurrentBalance,
		FormattedBalance: currency.FormatBRL(a.CurrentBalance),
		Color:            a.Color,
		Icon:             a.Icon,
		BankID:           a.BankID,
		IncludeInTotal:   a.IncludeInTotal,
		Active:           a.Active,
	}
	if a.AccountType.ID != 0 {
		resp.AccountTypeName = a.AccountType.Name
	}
	return resp
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Create a new account with an initial balance in centavos
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} AccountResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	includeInTotal := true
	if req.IncludeInTotal != nil {
		includeInTotal = *req.IncludeInTotal
	}

	account, err := h.accountService.CreateAccount(req.Name, req.AccountTypeID, req.InitialBalance, req.Color, req.Icon, req.BankID, includeInTotal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "account", account.ID, map[string]any{"name": account.Name})

	c.JSON(http.StatusCreated, newAccountResponse(account))
}

// ListAccounts handles the retrieval of all active accounts
// @Summary     List accounts
// @Description Get all active accounts ordered by name
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} AccountResponse "List of accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, newAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": responses})
}

// GetAccount handles the retrieval of a single account
// @Summary     Get account by ID
// @Description Get a specific active account by ID
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} AccountResponse "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// UpdateAccount handles updating an account
// @Summary     Update account
// @Description Update account fields. Initial balance edits never rewrite the current balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} AccountResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input or account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(id, services.AccountUpdateFields{
		Name:           req.Name,
		AccountTypeID:  req.AccountTypeID,
		InitialBalance: req.InitialBalance,
		Color:          req.Color,
		Icon:           req.Icon,
		BankID:         req.BankID,
		IncludeInTotal: req.IncludeInTotal,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "account", id, nil)

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// ArchiveAccount handles soft-deleting an account
// @Summary     Archive account
// @Description Hide an account from listings and totals while keeping its history
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse "Account archived"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id}/archive [post]
func (h *AccountHandler) ArchiveAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.ArchiveAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "archive", "account", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Account archived successfully"})
}

// DeleteAccount handles permanently deleting an account and its events
// @Summary     Delete account
// @Description Permanently delete an account. Its events are removed with it
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "account", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ListBanks returns the static bank catalog
// @Summary     List known banks
// @Description Get the built-in catalog of banks available for account branding
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Bank "Bank catalog"
// @Router      /banks [get]
func (h *AccountHandler) ListBanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"banks": models.Banks})
}
