package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (VALIDATION-001 to VALIDATION-099)
	ErrCodeEmptyTitle     ErrorCode = "VALIDATION-001"
	ErrCodeEmptyContent   ErrorCode = "VALIDATION-002"
	ErrCodeEmptyComment   ErrorCode = "VALIDATION-003"
	ErrCodeInvalidInput   ErrorCode = "VALIDATION-004"
	ErrCodeBadCredentials ErrorCode = "VALIDATION-005"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeUnauthorized      ErrorCode = "AUTH-001"
	ErrCodeNoToken           ErrorCode = "AUTH-002"
	ErrCodeIdentityResolve   ErrorCode = "AUTH-003"
	ErrCodeCredentialStorage ErrorCode = "AUTH-004"

	// Permission errors (FORBIDDEN-001 to FORBIDDEN-099)
	ErrCodeForbidden ErrorCode = "FORBIDDEN-001"

	// Missing-resource errors (NOTFOUND-001 to NOTFOUND-099)
	ErrCodeBlogNotFound    ErrorCode = "NOTFOUND-001"
	ErrCodeCommentNotFound ErrorCode = "NOTFOUND-002"

	// Transport errors (NETWORK-001 to NETWORK-099)
	ErrCodeNetwork     ErrorCode = "NETWORK-001"
	ErrCodeBadResponse ErrorCode = "NETWORK-002"
	ErrCodeAPIFailure  ErrorCode = "NETWORK-003"

	// Edit flow errors (EDIT-001 to EDIT-099)
	ErrCodeEditTransition ErrorCode = "EDIT-001"
	ErrCodeEditBusy       ErrorCode = "EDIT-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead  ErrorCode = "CONFIG-001"
	ErrCodeConfigWrite ErrorCode = "CONFIG-002"
	ErrCodeConfigKey   ErrorCode = "CONFIG-003"

	// Rendering errors (RENDER-001 to RENDER-099)
	ErrCodeRenderFailed ErrorCode = "RENDER-001"
)

// BlogctlError represents an enhanced error with code, suggestions, and documentation
type BlogctlError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *BlogctlError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *BlogctlError) Unwrap() error {
	return e.Cause
}

// New creates a new BlogctlError
func New(code ErrorCode, message string) *BlogctlError {
	return &BlogctlError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new BlogctlError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *BlogctlError {
	return &BlogctlError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *BlogctlError) WithSuggestion(suggestion string) *BlogctlError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *BlogctlError) WithSuggestions(suggestions ...string) *BlogctlError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *BlogctlError) WithDocs(url string) *BlogctlError {
	e.DocsURL = url
	return e
}

// codeFamily returns the category prefix of an error's code, or "" when no
// BlogctlError is found anywhere in the chain.
func codeFamily(err error) string {
	var be *BlogctlError
	if !stderrors.As(err, &be) {
		return ""
	}
	code := string(be.Code)
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return codeFamily(err) == "VALIDATION"
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	return codeFamily(err) == "AUTH"
}

// IsForbidden reports whether err is a permission failure
func IsForbidden(err error) bool {
	return codeFamily(err) == "FORBIDDEN"
}

// IsNotFound reports whether err refers to a missing or stale resource
func IsNotFound(err error) bool {
	return codeFamily(err) == "NOTFOUND"
}

// IsNetwork reports whether err is a transport-level failure
func IsNetwork(err error) bool {
	return codeFamily(err) == "NETWORK"
}

// Common error constructors for frequently used errors

// NewUnauthorizedError creates an authentication error
func NewUnauthorizedError(detail string) *BlogctlError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("unauthorized: %s", detail)).
		WithSuggestion("Run 'blogctl auth login' to authenticate").
		WithSuggestion("Your session may have expired")
}

// NewNoTokenError creates a missing-token error
func NewNoTokenError(operation string) *BlogctlError {
	return New(ErrCodeNoToken, fmt.Sprintf("%s requires authentication", operation)).
		WithSuggestion("Run 'blogctl auth login' to authenticate").
		WithSuggestion("Run 'blogctl auth register' to create an account")
}

// NewIdentityResolveError creates an identity-resolution failure.
// Callers must treat this as a forced logout.
func NewIdentityResolveError(cause error) *BlogctlError {
	return Wrap(ErrCodeIdentityResolve, "could not resolve identity for the stored token", cause).
		WithSuggestion("Run 'blogctl auth login' to re-authenticate").
		WithSuggestion("Check the API base URL with 'blogctl config get api_url'")
}

// NewForbiddenError creates a permission error
func NewForbiddenError(action string) *BlogctlError {
	return New(ErrCodeForbidden, fmt.Sprintf("you are not allowed to %s", action)).
		WithSuggestion("Only the author (or an admin, for deletes) may modify content")
}

// NewBlogNotFoundError creates a stale-blog-id error
func NewBlogNotFoundError(id string) *BlogctlError {
	return New(ErrCodeBlogNotFound, fmt.Sprintf("blog not found: %s", id)).
		WithSuggestion("Run 'blogctl blogs list' to see available posts").
		WithSuggestion("The post may have been deleted by its author")
}

// NewCommentNotFoundError creates a stale-comment-id error
func NewCommentNotFoundError(id string) *BlogctlError {
	return New(ErrCodeCommentNotFound, fmt.Sprintf("comment not found: %s", id)).
		WithSuggestion("The comment may have been deleted already")
}

// NewNetworkError creates a transport failure error
func NewNetworkError(cause error) *BlogctlError {
	return Wrap(ErrCodeNetwork, "request failed", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API base URL with 'blogctl config get api_url'")
}
