package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/services"
)

// AccountTypeHandler handles account-type requests
type AccountTypeHandler struct {
	accountTypeService services.AccountTypeServicer
}

// NewAccountTypeHandler creates a new AccountTypeHandler
func NewAccountTypeHandler(accountTypeService services.AccountTypeServicer) *AccountTypeHandler {
	return &AccountTypeHandler{accountTypeService: accountTypeService}
}

// CreateAccountTypeRequest represents the request payload for creating an account type
type CreateAccountTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// UpdateAccountTypeRequest represents the request payload for updating an account type
type UpdateAccountTypeRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=255"`
	Active      *bool  `json:"active"`
}

// ListAccountTypes handles the retrieval of all account types
// @Summary     List account types
// @Description Get all account types ordered by name
// @Tags        account-types
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.AccountType "List of account types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account-types [get]
func (h *AccountTypeHandler) ListAccountTypes(c *gin.Context) {
	types, err := h.accountTypeService.ListAccountTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_types": types})
}

// GetAccountType handles the retrieval of a single account type
// @Summary     Get account type by ID
// @Description Get a specific account type by ID
// @Tags        account-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account type ID"
// @Success     200 {object} models.AccountType "Account type details"
// @Failure     400 {object} ErrorResponse "Invalid account type ID"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Router      /account-types/{id} [get]
func (h *AccountTypeHandler) GetAccountType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountType, err := h.accountTypeService.GetAccountTypeByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_type": accountType})
}

// CreateAccountType handles the creation of a new account type
// @Summary     Create an account type
// @Description Create a new user-defined account type
// @Tags        account-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountTypeRequest true "Account type details"
// @Success     201 {object} models.AccountType "Account type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account-types [post]
func (h *AccountTypeHandler) CreateAccountType(c *gin.Context) {
	var req CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	accountType, err := h.accountTypeService.CreateAccountType(req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account_type": accountType})
}

// UpdateAccountType handles updating an account type
// @Summary     Update account type
// @Description Update an existing account type
// @Tags        account-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account type ID"
// @Param       request body UpdateAccountTypeRequest true "Updated account type details"
// @Success     200 {object} models.AccountType "Updated account type"
// @Failure     400 {object} ErrorResponse "Invalid input or account type ID"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Router      /account-types/{id} [put]
func (h *AccountTypeHandler) UpdateAccountType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	accountType, err := h.accountTypeService.UpdateAccountType(id, req.Name, req.Description, req.Active)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_type": accountType})
}

// DeleteAccountType handles deleting an account type
// @Summary     Delete account type
// @Description Delete an account type that no account references
// @Tags        account-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account type ID"
// @Success     200 {object} MessageResponse "Account type deleted"
// @Failure     400 {object} ErrorResponse "Invalid account type ID"
// @Failure     404 {object} ErrorResponse "Account type not found"
// @Failure     409 {object} ErrorResponse "Account type in use"
// @Router      /account-types/{id} [delete]
func (h *AccountTypeHandler) DeleteAccountType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountTypeService.DeleteAccountType(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account type deleted successfully"})
}
