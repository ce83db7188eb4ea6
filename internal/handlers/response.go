package handlers

import (
	"net/http"

	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// PageMeta is the pagination block returned by paginated list endpoints
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// respondSuccess writes the success envelope with a data payload
func respondSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

// respondSuccessMessage writes the success envelope with a message and
// optional data payload
func respondSuccessMessage(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// respondPage writes a paginated success envelope
func respondPage(c *gin.Context, data interface{}, meta PageMeta) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   data,
		"meta":   meta,
	})
}

// respondValidation writes a 422 with field-level errors
func respondValidation(c *gin.Context, errs validator.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"status":  "error",
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondBadRequest writes a 400 for unreadable request bodies
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondNotFound writes a 404 with a message
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondServerError writes a 500 passing the raw error text through.
// Acceptable for an internal admin tool; never expose this on a public API.
func respondServerError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}
