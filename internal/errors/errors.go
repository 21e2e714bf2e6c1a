// Package errors provides standardized error types for the npmginx
// provisioner.
//
// Provisioning is a linear sequence of steps against the host. Every
// error carries the step it happened in and a category code, so the
// CLI can print a useful message and callers can branch on the code
// with errors.Is / errors.As.
//
// Creating errors:
//
//	return errors.Step(errors.CodePackage, "install packages", err)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRootRequired) {
//	    // privilege failure, nothing was touched
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for the provisioning step categories.
const (
	CodePermission ErrorCode = "PERMISSION" // Root privileges missing
	CodePackage    ErrorCode = "PACKAGE"    // Package manager failure
	CodeService    ErrorCode = "SERVICE"    // Service manager failure
	CodeRuntime    ErrorCode = "RUNTIME"    // Node.js install/version failure
	CodeWebServer  ErrorCode = "WEBSERVER"  // Nginx config/test/reload failure
	CodeSSL        ErrorCode = "SSL"        // Certificate acquisition failure
	CodeConfig     ErrorCode = "CONFIG"     // Settings load/validation failure
	CodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// ProvisionError represents a structured error with context about the
// provisioning step that produced it.
type ProvisionError struct {
	Code    ErrorCode // Error category
	Step    string    // Human-readable step name (if applicable)
	Message string    // Human-readable message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	switch {
	case e.Step != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	case e.Step != "":
		return fmt.Sprintf("%s: %s", e.Step, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error. Comparison is based
// on the error code.
func (e *ProvisionError) Is(target error) bool {
	t, ok := target.(*ProvisionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common scenarios.
var (
	// ErrRootRequired indicates the provisioner was started without
	// root privileges.
	ErrRootRequired = &ProvisionError{Code: CodePermission, Message: "root privileges required, run with sudo"}

	// ErrCertbotNotInstalled indicates the certbot binary is missing.
	ErrCertbotNotInstalled = &ProvisionError{Code: CodeSSL, Message: "certbot not installed"}

	// ErrNodeNotInstalled indicates no node binary is on the PATH.
	ErrNodeNotInstalled = &ProvisionError{Code: CodeRuntime, Message: "node not installed"}
)

// Step creates an error tied to a named provisioning step.
func Step(code ErrorCode, step string, err error) error {
	return &ProvisionError{
		Code: code,
		Step: step,
		Err:  err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &ProvisionError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Validation creates a settings validation error with a custom message.
func Validation(msg string) error {
	return &ProvisionError{
		Code:    CodeConfig,
		Message: msg,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
