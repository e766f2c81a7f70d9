// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков: {"success": ...} при успехе
// и {"error": ...} при ошибке.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// SuccessResponse — ответ об успешной операции без данных.
type SuccessResponse struct {
	Success string `json:"success" example:"Signed in"`
}

// ErrorResponse — ответ с текстом ошибки.
// Используется и в аннотациях @Failure.
type ErrorResponse struct {
	Error string `json:"error" example:"Not logged in"`
}

// Тексты ответов, которые видит клиент.
const (
	MsgSignedUp      = "Signed up"
	MsgSignedIn      = "Signed in"
	MsgLoggedOut     = "Logged out"
	MsgItemDeleted   = "Item deleted"
	MsgUserExists    = "Username already exists"
	MsgUserNotFound  = "Username not found"
	MsgWrongPassword = "Password incorrect"
	MsgNotLoggedIn   = "Not logged in"
	MsgItemNotFound  = "Item not found"
	MsgItemOnRent    = "Item is on rent. Try again when it's free."
	MsgInvalidItemID = "Invalid item id"
	MsgInvalidBody   = "invalid request body"
	MsgInternalError = "internal error"
)

// Success возвращает ответ {"success": msg}.
func Success(msg string) SuccessResponse {
	return SuccessResponse{Success: msg}
}

// Error возвращает ответ {"error": msg}.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError собирает ошибки валидатора в одну строку через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Error: strings.Join(errsMsgs, ", "),
	}
}
