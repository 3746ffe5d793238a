package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// ListMeta accompanies list payloads.
type ListMeta struct {
	Count int `json:"count"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, res)
	return res
}

// List writes a success envelope with a count meta.
func List[T any](ctx *gin.Context, items []T, message string) APIResponse[[]T] {
	if items == nil {
		items = []T{}
	}
	return Success(ctx, http.StatusOK, items, message, ListMeta{Count: len(items)})
}

// Error writes a failure envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, err any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, res)
	return res
}
