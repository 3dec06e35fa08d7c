// response описывает единый конверт ответа REST API:
//
//	{ "message": string, "success": bool, "data"?: T, "token"?: string }
//
// Ошибки пишет internal/errors в том же конверте с success=false.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope — корневой объект любого ответа.
type Envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

// JSON пишет value с нужным Content-Type и статусом.
func JSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// OK пишет успешный конверт с данными.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Message: message, Success: true, Data: data})
}

// WithToken пишет успешный конверт с данными и токеном доступа.
func WithToken(w http.ResponseWriter, status int, message, token string, data any) {
	JSON(w, status, Envelope{Message: message, Success: true, Data: data, Token: token})
}

// Fail пишет конверт ошибки. Используется internal/errors.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Message: message, Success: false})
}
