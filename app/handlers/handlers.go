// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type requestContextKey string

const (
	requestIDKey  requestContextKey = "request_id"
	cancelFuncKey requestContextKey = "cancel_func"
)

// requestContext builds the context flows run under: bounded by a timeout and
// carrying the request id for log correlation.
func requestContext(c fiber.Ctx) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, requestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, cancelFuncKey, cancel)
	return ctx
}

func errorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func successResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// businessErrorResponse maps a flow error onto the matching HTTP status.
func businessErrorResponse(c fiber.Ctx, err error) error {
	code := "INTERNAL_ERROR"
	if be, ok := err.(*businessflow.BusinessError); ok {
		code = be.Code
	}
	switch {
	case businessflow.IsInvalidInput(err):
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), code, nil)
	case businessflow.IsRateNotFound(err):
		return errorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), code, nil)
	case businessflow.IsNotFound(err):
		return errorResponse(c, fiber.StatusNotFound, err.Error(), code, nil)
	case businessflow.IsConflict(err):
		return errorResponse(c, fiber.StatusConflict, err.Error(), code, nil)
	default:
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error", code, nil)
	}
}

func validationErrorResponse(c fiber.Ctx, err error) error {
	var details []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			details = append(details, fmt.Sprintf("field %s failed on %s", ve.Field(), ve.Tag()))
		}
	}
	return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
}

func paramUint(c fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(v), nil
}
