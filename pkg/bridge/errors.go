package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
)

// Code is the closed set of failure categories reported to the host.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeFileNotFound    Code = "FILE_NOT_FOUND"
	CodeInvalidImage    Code = "INVALID_IMAGE"
	CodeSetWallpaper    Code = "SET_WALLPAPER_ERROR"
	CodeNotImplemented  Code = "NOT_IMPLEMENTED"
)

// Error is a categorized failure.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errorf returns an Error with a formatted message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// FromError categorizes err. Errors that match no category become SET_WALLPAPER_ERROR.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var be *Error
	if errors.As(err, &be) {
		return be
	}

	switch {
	case errors.Is(err, wallpaper.ErrInvalidArgument):
		return &Error{Code: CodeInvalidArgument, Message: err.Error()}
	case errors.Is(err, wallpaper.ErrFileNotFound):
		return &Error{Code: CodeFileNotFound, Message: "Image file not found"}
	case errors.Is(err, wallpaper.ErrInvalidImage):
		return &Error{Code: CodeInvalidImage, Message: "Could not decode image"}
	case errors.Is(err, wallpaper.ErrNotImplemented):
		return &Error{Code: CodeNotImplemented, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Code: CodeSetWallpaper, Message: "request canceled: " + err.Error()}
	default:
		return &Error{Code: CodeSetWallpaper, Message: err.Error()}
	}
}
