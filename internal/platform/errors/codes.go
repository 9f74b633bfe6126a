// Package errors provides structured error handling for the portal.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Auth errors
	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthEmailInUse         Code = "AUTH_EMAIL_IN_USE"
	CodeAuthEmailRequired      Code = "AUTH_EMAIL_REQUIRED"
	CodeAuthPasswordTooShort   Code = "AUTH_PASSWORD_TOO_SHORT"
	CodeAuthSessionExpired     Code = "AUTH_SESSION_EXPIRED"
	CodeAuthConfirmationToken  Code = "AUTH_CONFIRMATION_TOKEN_INVALID"

	// Profile errors
	CodeProfileMissing  Code = "PROFILE_MISSING"
	CodeProfileUserID   Code = "PROFILE_USER_ID_REQUIRED"
	CodeProfileReadOnly Code = "PROFILE_READ_ONLY_FIELD"

	// Content errors
	CodeEventTitleEmpty    Code = "EVENT_TITLE_EMPTY"
	CodeEventDateEmpty     Code = "EVENT_DATE_EMPTY"
	CodeActivityTitleEmpty Code = "ACTIVITY_TITLE_EMPTY"
	CodeActivityCategory   Code = "ACTIVITY_CATEGORY_EMPTY"
	CodeContactNameEmpty   Code = "CONTACT_NAME_EMPTY"
	CodeContactEmailEmpty  Code = "CONTACT_EMAIL_EMPTY"
	CodeContactBodyEmpty   Code = "CONTACT_MESSAGE_EMPTY"
	CodeMessageSubject     Code = "MESSAGE_SUBJECT_EMPTY"
	CodeMessageContent     Code = "MESSAGE_CONTENT_EMPTY"
	CodeStudyTitleEmpty    Code = "STUDY_TITLE_EMPTY"
	CodeStudyFileMissing   Code = "STUDY_FILE_MISSING"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuthInvalidCredentials, CodeAuthSessionExpired:
		return http.StatusUnauthorized
	case CodeAuthEmailInUse:
		return http.StatusConflict
	case CodeNotFound, CodeProfileMissing:
		return http.StatusNotFound
	case CodeAuthEmailRequired,
		CodeAuthPasswordTooShort,
		CodeAuthConfirmationToken,
		CodeProfileUserID,
		CodeProfileReadOnly,
		CodeEventTitleEmpty,
		CodeEventDateEmpty,
		CodeActivityTitleEmpty,
		CodeActivityCategory,
		CodeContactNameEmpty,
		CodeContactEmailEmpty,
		CodeContactBodyEmpty,
		CodeMessageSubject,
		CodeMessageContent,
		CodeStudyTitleEmpty,
		CodeStudyFileMissing:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
