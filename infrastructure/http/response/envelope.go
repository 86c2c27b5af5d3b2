package response

import (
	"encoding/json"
	"net/http"

	apperr "github.com/techpro/techpromanager/domain/error"
)

type Envelope struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    interface{}      `json:"data"`
	Code    apperr.ErrorCode `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, status bool, message string, data interface{}) {
	write(w, statusCode, Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func write(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, true, message, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, false, message, nil)
}

// AppError writes err using its catalogue status and public message. Details
// and causes are never written; unknown errors become a generic 500.
func AppError(w http.ResponseWriter, err error) {
	appErr := apperr.AsAppError(err)
	write(w, apperr.HTTPStatus(appErr), Envelope{
		Status:  false,
		Message: appErr.Message,
		Code:    appErr.Code,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	AppError(w, apperr.ErrInvalidRequest(message))
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
