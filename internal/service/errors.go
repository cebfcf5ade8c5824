package service

import (
	"errors"
	"fmt"
)

// InsufficientStockError names the offending product so the register can
// show which line to fix. The sale is aborted with no partial write.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: solicitado %d, disponible %d",
		e.Product, e.Requested, e.Available)
}

// InvalidRequestError marks input the caller can correct. Handlers answer
// it with the message and a 4xx; any other error coming out of a service is
// a server-side failure and must never reach the client verbatim.
type InvalidRequestError struct {
	Msg string
}

func (e *InvalidRequestError) Error() string { return e.Msg }

func invalidRequestf(format string, args ...interface{}) error {
	return &InvalidRequestError{Msg: fmt.Sprintf(format, args...)}
}

// ErrPeriodConflict is returned when a close-period request carries a stale
// period start — another terminal already closed the window.
var ErrPeriodConflict = errors.New("el periodo ya fue cerrado por otro corte")

// ErrInvalidCredentials covers every PIN login failure; the response never
// says whether the PIN exists.
var ErrInvalidCredentials = errors.New("PIN inválido o usuario inactivo")
