package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message   string `json:"message"`
		RequestID string `json:"requestId,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the context for the error middleware and writes
// msg to the client. The request id set by the logging middleware is echoed so
// a failed purchase can be traced back to its log lines.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr.AbortWithError: nil error for " + msg)
	}

	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	resp.Error.RequestID = c.GetString("request_id")

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
