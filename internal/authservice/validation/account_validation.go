// Package validation implements two-phase request validation: pure syntax
// rules first, then the uniqueness rule, which needs a storage round-trip
// through the account service and only runs once syntax passes. Keeping the
// phases distinct lets tests exercise each independently.
package validation

import (
	"context"
	"errors"

	"github.com/auth-account-service/internal/authservice/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const usernameRules = "required,min=6,max=30,alphanum"

// Violation messages, matching the user-facing wording of the API.
const (
	MsgUsernameRequired  = "Username is required."
	MsgUsernameLength    = "Username must be between 6 and 30 characters."
	MsgUsernameAlphanum  = "Username must be alphanumeric only."
	MsgUsernameTaken     = "Username is already taken."
	MsgAccountIDRequired = "Account Id is required."
)

// UsernameValidator validates a standalone username for the availability
// probe: syntax rules plus the advisory availability check.
type UsernameValidator struct {
	validate       *validator.Validate
	accountService service.AccountService
}

// NewUsernameValidator creates a username validator backed by the given service
func NewUsernameValidator(accountService service.AccountService) *UsernameValidator {
	return &UsernameValidator{
		validate:       validator.New(),
		accountService: accountService,
	}
}

// Validate returns the list of violation messages for the username, empty
// when it is syntactically valid and currently available. The returned error
// is a storage failure from the availability check, never a validation
// outcome.
func (v *UsernameValidator) Validate(ctx context.Context, username string) ([]string, error) {
	violations := usernameSyntaxViolations(v.validate, username)
	if len(violations) > 0 {
		return violations, nil
	}

	available, err := v.accountService.IsUsernameAvailable(ctx, username)
	if err != nil {
		return nil, err
	}
	if !available {
		violations = append(violations, MsgUsernameTaken)
	}
	return violations, nil
}

// AccountValidator validates an upsert submission: syntax rules for the
// username and account id, then the self-exclusion uniqueness rule, which
// allows the account to keep its own current username.
type AccountValidator struct {
	validate       *validator.Validate
	accountService service.AccountService
}

// NewAccountValidator creates an account validator backed by the given service
func NewAccountValidator(accountService service.AccountService) *AccountValidator {
	return &AccountValidator{
		validate:       validator.New(),
		accountService: accountService,
	}
}

// Validate returns the list of violation messages for the submission. The
// uniqueness rule runs only after the syntax rules pass; callers must treat
// an empty list as the precondition for invoking the upsert path.
func (v *AccountValidator) Validate(ctx context.Context, accountID uuid.UUID, username string) ([]string, error) {
	violations := usernameSyntaxViolations(v.validate, username)
	if accountID == uuid.Nil {
		violations = append(violations, MsgAccountIDRequired)
	}
	if len(violations) > 0 {
		return violations, nil
	}

	valid, err := v.accountService.IsValidForAccount(ctx, username, accountID)
	if err != nil {
		return nil, err
	}
	if !valid {
		violations = append(violations, MsgUsernameTaken)
	}
	return violations, nil
}

// usernameSyntaxViolations runs the pure syntax rules. No storage round-trip
// happens here.
func usernameSyntaxViolations(validate *validator.Validate, username string) []string {
	err := validate.Var(username, usernameRules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{MsgUsernameRequired}
	}

	var violations []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			violations = append(violations, MsgUsernameRequired)
		case "min", "max":
			violations = append(violations, MsgUsernameLength)
		case "alphanum":
			violations = append(violations, MsgUsernameAlphanum)
		}
	}
	return violations
}
