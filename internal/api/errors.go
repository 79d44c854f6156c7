package api

import (
	"errors"
	"net/http"

	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
)

// MsgInvalid is the top-level message of a validation failure.
const MsgInvalid = "The given data was invalid."

// ErrorFor maps a board error to an HTTP status and response body. Unknown
// errors become a 500 with a generic message.
func ErrorFor(err error) (int, ErrorResponse) {
	var verr *comment.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: MsgInvalid,
			Errors:  map[string][]string{"content": {verr.Error()}},
		}
	}

	if fields, ok := FieldErrors(err); ok {
		return http.StatusUnprocessableEntity, ErrorResponse{Message: MsgInvalid, Errors: fields}
	}

	switch {
	case errors.Is(err, comment.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Comment not found."}
	case errors.Is(err, feedback.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Feedback not found."}
	case errors.Is(err, identity.ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "User not found."}
	case errors.Is(err, comment.ErrUnauthorized):
		return http.StatusForbidden, ErrorResponse{Message: "This action is unauthorized."}
	case errors.Is(err, board.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Message: "Unauthenticated."}
	case errors.Is(err, board.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Message: "The provided credentials are incorrect."}
	case errors.Is(err, identity.ErrEmailTaken):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: MsgInvalid,
			Errors:  map[string][]string{"email": {"The email has already been taken."}},
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: "Server Error"}
	}
}
