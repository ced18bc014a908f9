package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/auth-account-service/internal/authservice/service"
	"github.com/auth-account-service/internal/authservice/validation"
	"github.com/auth-account-service/internal/domain/account"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService    service.AccountService
	usernameValidator *validation.UsernameValidator
	accountValidator  *validation.AccountValidator
	logger            *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	logger *slog.Logger,
	accountService service.AccountService,
	usernameValidator *validation.UsernameValidator,
	accountValidator *validation.AccountValidator,
) *AccountHandler {
	return &AccountHandler{
		accountService:    accountService,
		usernameValidator: usernameValidator,
		accountValidator:  accountValidator,
		logger:            logger,
	}
}

// ValidateUsername handles the availability probe: syntax rules plus the
// advisory availability check. The probe itself always succeeds, so an
// invalid or taken username is reported as data, not as a transport error.
func (h *AccountHandler) ValidateUsername(c *gin.Context) {
	username := c.Query("username")

	violations, err := h.usernameValidator.Validate(c.Request.Context(), username)
	if err != nil {
		h.logger.Error("Failed to validate username", "username", username, "error", err)
		RespondInternalError(c)
		return
	}

	if len(violations) > 0 {
		RespondOK(c, UsernameValidationResponse{Valid: false, Violations: violations}, "")
		return
	}
	RespondOK(c, UsernameValidationResponse{Valid: true}, "Username is valid")
}

// Upsert handles creation of a new account or a rename of an existing one.
// The validation layer runs first; a submission reaching the service has
// therefore passed the self-exclusion check, which Upsert relies on.
func (h *AccountHandler) Upsert(c *gin.Context) {
	var req UpsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID := uuid.Nil
	if req.AccountID != "" {
		var err error
		accountID, err = uuid.Parse(req.AccountID)
		if err != nil {
			h.logger.Error("Invalid account ID", "account_id", req.AccountID, "error", err)
			RespondBadRequest(c, "Invalid account ID")
			return
		}
	}

	violations, err := h.accountValidator.Validate(c.Request.Context(), accountID, req.Username)
	if err != nil {
		h.logger.Error("Failed to validate account request", "error", err)
		RespondInternalError(c)
		return
	}
	if len(violations) > 0 {
		RespondBadRequest(c, "Validation failed", violations...)
		return
	}

	acc, err := account.NewAccount(accountID, req.Username)
	if err != nil {
		h.logger.Error("Invalid account data", "error", err)
		RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.accountService.Upsert(c.Request.Context(), acc)
	if err != nil {
		var duplicateUsernameErr account.ErrDuplicateUsername
		if errors.As(err, &duplicateUsernameErr) {
			// Lost the race on the unique index after validation passed.
			h.logger.Warn("Username claimed concurrently", "username", duplicateUsernameErr.Username)
			RespondConflict(c, validation.MsgUsernameTaken)
			return
		}
		var duplicateIDErr account.ErrDuplicateAccountID
		if errors.As(err, &duplicateIDErr) {
			h.logger.Warn("Account id already has a row under another username", "account_id", duplicateIDErr.AccountID.String())
			RespondConflict(c, "Account with this ID already exists under a different username")
			return
		}
		h.logger.Error("Failed to upsert account", "error", err)
		RespondInternalError(c)
		return
	}

	response := mapAccountToResponse(result.Account)
	if result.Operation == service.OperationCreate {
		RespondCreated(c, response, "Account created successfully")
		return
	}
	RespondOK(c, response, "Account updated successfully")
}

// GetByID retrieves an account by its identifier, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc), "")
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID.String(),
		Username:  acc.Username,
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
}
