package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidID        = errors.New("an ID specified in the request was not a valid unsigned integer")
	ErrInvalidMonth     = errors.New("could not parse the specified month, did you use YYYY-MM format?")
	ErrNoResourceForID  = errors.New("there is no resource for the ID you specified")
)
