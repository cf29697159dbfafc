package gerr

import "errors"

var (
	ErrInvalidPeriod  = errors.New("invalid reporting period")
	ErrUnknownSection = errors.New("unknown report section")
	ErrUnknownShape   = errors.New("unknown chart shape")
	ErrUnknownSource  = errors.New("unknown document source")
	ErrInvalidParam   = errors.New("invalid parameter")

	ErrMalformedExport = errors.New("malformed document export")
)
