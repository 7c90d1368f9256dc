package service

import (
	"fmt"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func WrapError(domainError *DomainError, err error) error {
	return &DomainError{
		Code:    domainError.Code,
		Message: domainError.Message,
		Err:     err,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду и сообщению, чтобы errors.Is работал с обёрнутыми копиями
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	// NOT_FOUND
	ErrTeamMemberNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "TeamMember not found",
	}

	// ALREADY_EXISTS
	ErrTeamMemberExists = &DomainError{
		Code:    "ALREADY_EXISTS",
		Message: "TeamMember with this ID already exists",
	}

	// INVALID_ID
	ErrInvalidTeamMemberId = &DomainError{
		Code:    "INVALID_ID",
		Message: "Invalid TeamMember ID format",
	}

	// INVALID_INPUT
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
)
