// Package httputil contains helpers shared by all API controllers.
package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no Sinking Fund matching your query"`
}

// NewError writes an HTTPError with the given status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// notFoundErrors map to a 404 response.
var notFoundErrors = []error{
	models.ErrResourceNotFound,
	models.ErrBillsFundNotFound,
	models.ErrAllocationConfigNotFound,
}

// clientErrors are validation and constraint violations that map to a
// 400 response. Everything else is treated as a server fault.
var clientErrors = []error{
	models.ErrAmountNotPositive,
	models.ErrFrequencyInvalid,
	models.ErrBillTypeInvalid,
	models.ErrBudgetMonthNotUnique,
	models.ErrUnallocatedMonthNotUnique,
	models.ErrCategoryTypeInvalid,
	models.ErrTransactionTypeInvalid,
	models.ErrAllocationMethodInvalid,
	models.ErrCategoryReferenceInvalid,
	models.ErrFundReferenceInvalid,
	models.ErrInsufficientFundBalance,
	models.ErrBillsFundAlreadyDesignated,
	ErrInvalidBody,
	ErrRequestBodyEmpty,
	ErrInvalidID,
	ErrInvalidMonth,
}

// Status returns the appropriate HTTP status for a database error.
func Status(err error) int {
	if slices.ContainsFunc(notFoundErrors, func(e error) bool { return errors.Is(err, e) }) {
		return http.StatusNotFound
	}

	if slices.ContainsFunc(clientErrors, func(e error) bool { return errors.Is(err, e) }) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Handler writes the error response for a database or parsing error.
func Handler(c *gin.Context, err error) {
	switch {
	// No record found => 404
	case errors.Is(err, gorm.ErrRecordNotFound):
		NewError(c, http.StatusNotFound, ErrNoResourceForID)

	// End of file reached when reading the body
	case errors.Is(io.EOF, err):
		NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)

	// Time could not be parsed. The error string explains the
	// problem well enough to return it
	case reflect.TypeOf(err) == reflect.TypeOf(&time.ParseError{}):
		NewError(c, http.StatusBadRequest, err)

	default:
		status := Status(err)
		if status == http.StatusInternalServerError {
			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			err = fmt.Errorf("an error occurred on the server during your request, the request id is '%v'", requestid.Get(c))
		}
		NewError(c, status, err)
	}
}

// ParseID parses the named path parameter as an unsigned integer ID.
func ParseID(c *gin.Context, param string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, err
	}

	return uint(parsed), nil
}

// BindData binds the JSON request body to the struct passed in.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, http.StatusBadRequest, ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}
