package geolocation

import (
	"context"
	"errors"
	"time"
)

type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // metros, 0 si no se conoce
	Timestamp time.Time
}

type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaximumAge 0 = no se acepta ninguna lectura cacheada.
	MaximumAge time.Duration
}

// Code replica los códigos de error de la API de posicionamiento del dispositivo.
type Code int

const (
	CodePermissionDenied    Code = 1
	CodePositionUnavailable Code = 2
	CodeTimeout             Code = 3
)

func (c Code) String() string {
	switch c {
	case CodePermissionDenied:
		return "permission_denied"
	case CodePositionUnavailable:
		return "position_unavailable"
	case CodeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

var (
	ErrPermissionDenied    = &Error{Code: CodePermissionDenied}
	ErrPositionUnavailable = &Error{Code: CodePositionUnavailable}
	ErrTimeout             = &Error{Code: CodeTimeout}
)

// Error es un error de posicionamiento clasificado. errors.Is compara por Code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "geolocation: " + e.Code.String()
	}
	return "geolocation: " + e.Code.String() + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Classify normaliza un error cualquiera a uno de los tres códigos.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeTimeout, Message: err.Error()}
	}
	return &Error{Code: CodePositionUnavailable, Message: err.Error()}
}

// Source obtiene la posición actual de un dispositivo.
type Source interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}
