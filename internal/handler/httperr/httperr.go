// Package httperr defines the flat error body the booking API returns and
// the helper that handlers and middleware use to emit it.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body every endpoint returns. Status stays out of
// the JSON; the error middleware reads it from the context error's Meta.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// AbortWithError writes the envelope and records the cause on the gin
// context so the request log carries more than the public message.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
