package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeMissingSelection  Code = "MISSING_SELECTION"
	CodeMalformedResponse Code = "MALFORMED_RESPONSE"
	CodeCatalogLoad       Code = "CATALOG_LOAD_FAILURE"
	CodeNotFound          Code = "NOT_FOUND"
	CodeBridge            Code = "BRIDGE_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Metadata describes how an error of a given code is surfaced: as a host
// alert shown to the shopper, or on the console only.
type Metadata struct {
	Alert          bool
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Alert:          true,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeMissingSelection: {
		Alert:          true,
		Retryable:      true,
		PublicMessage:  "please choose the required options",
		DetailsAllowed: true,
	},
	CodeMalformedResponse: {
		Alert:          false,
		Retryable:      false,
		PublicMessage:  "unexpected response from the shop",
		DetailsAllowed: true,
	},
	CodeCatalogLoad: {
		Alert:          false,
		Retryable:      false,
		PublicMessage:  "could not load the shop, try again later",
		DetailsAllowed: false,
	},
	CodeNotFound: {
		Alert:          false,
		Retryable:      false,
		PublicMessage:  "item not found",
		DetailsAllowed: false,
	},
	CodeBridge: {
		Alert:          false,
		Retryable:      true,
		PublicMessage:  "connection to the shop is unavailable",
		DetailsAllowed: true,
	},
	CodeInternal: {
		Alert:          false,
		Retryable:      true,
		PublicMessage:  "something went wrong",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// UserMessage resolves the text to surface for an error: the typed error's
// own message when details are allowed for its code, the code's public
// message otherwise, and the internal fallback for untyped errors.
func UserMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	meta := MetadataFor(typed.Code())
	if meta.DetailsAllowed && typed.Message() != "" {
		return typed.Message()
	}
	return meta.PublicMessage
}

// IsAlert reports whether the error should be surfaced as a host alert.
func IsAlert(err error) bool {
	typed := As(err)
	if typed == nil {
		return false
	}
	return MetadataFor(typed.Code()).Alert
}
