package cli

import (
	"errors"

	"github.com/aidanlsb/agentsync/internal/config"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/paths"
	"github.com/aidanlsb/agentsync/internal/resolver"
	"github.com/aidanlsb/agentsync/internal/rulesync"
	"github.com/aidanlsb/agentsync/internal/security"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Project errors
	ErrNotInitialized     = "NOT_INITIALIZED"
	ErrAlreadyInitialized = "ALREADY_INITIALIZED"
	ErrConfigInvalid      = "CONFIG_INVALID"

	// Tool errors
	ErrUnknownTool = "UNKNOWN_TOOL"

	// Rule errors
	ErrRuleNotFound    = "RULE_NOT_FOUND"
	ErrRuleExists      = "RULE_EXISTS"
	ErrRuleAmbiguous   = "RULE_AMBIGUOUS"
	ErrRuleNameInvalid = "RULE_NAME_INVALID"
	ErrParseFailed     = "PARSE_FAILED"
	ErrInvalidValue    = "INVALID_VALUE"

	// File errors
	ErrFileReadError     = "FILE_READ_ERROR"
	ErrFileWriteError    = "FILE_WRITE_ERROR"
	ErrFileOutsideRoot   = "FILE_OUTSIDE_ROOT"
	ErrDirectoryListFail = "DIRECTORY_LIST_FAILED"

	// Run errors
	ErrSyncFailed       = "SYNC_FAILED"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnInvalidRule = "INVALID_RULE"
	WarnCheckIssue  = "CHECK_ISSUE"
	WarnLossyMode   = "LOSSY_MODE"
)

// errorCode maps typed errors to their stable code.
func errorCode(err error) string {
	var (
		unknownTool *model.UnknownToolError
		parseErr    *parser.ParseError
		valueErr    *parser.InvalidValueError
		traversal   *security.PathTraversalError
		baseErr     *security.BaseError
		nameErr     *paths.InvalidRuleNameError
		validation  *config.ValidationError
		notFound    *resolver.NotFoundError
		ambiguous   *resolver.AmbiguousError
	)
	switch {
	case errors.Is(err, config.ErrNotInitialized):
		return ErrNotInitialized
	case errors.As(err, &unknownTool):
		return ErrUnknownTool
	case errors.As(err, &validation):
		return ErrConfigInvalid
	case errors.As(err, &parseErr):
		return ErrParseFailed
	case errors.As(err, &valueErr):
		return ErrInvalidValue
	case errors.As(err, &traversal), errors.As(err, &baseErr):
		return ErrFileOutsideRoot
	case errors.As(err, &nameErr):
		return ErrRuleNameInvalid
	case errors.As(err, &notFound):
		return ErrRuleNotFound
	case errors.As(err, &ambiguous):
		return ErrRuleAmbiguous
	case errors.Is(err, rulesync.ErrCanonicalSource):
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}
