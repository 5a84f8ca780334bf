package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the JSON error envelope every endpoint returns.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

func respondErrorDetails(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}
