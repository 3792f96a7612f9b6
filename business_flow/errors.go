// Package businessflow contains the core business logic and use cases for planning workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Input validation errors
	ErrInvalidInput         = errors.New("invalid input")
	ErrTRPsRequired         = errors.New("trps must be a positive number")
	ErrClipDurationRequired = errors.New("clip duration must be a positive number of seconds")
	ErrTargetGroupRequired  = errors.New("target group is required")
	ErrOwnerRequired        = errors.New("channel group (owner) is required")
	ErrNameRequired         = errors.New("name is required")
	ErrDateRangeInvalid     = errors.New("start date cannot be after end date")

	// Rate resolution errors
	ErrRateNotFound        = errors.New("no rate card entry for this owner and target group in the attached pricing list")
	ErrPricePerSecRequired = errors.New("price per second is required")
	ErrPricingListNotFound = errors.New("pricing list not found")

	// Campaign/wave structure errors
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrWaveNotFound         = errors.New("wave not found")
	ErrWaveItemNotFound     = errors.New("wave item not found")
	ErrTVCNotFound          = errors.New("tvc not found")
	ErrTVCNotInCampaign     = errors.New("tvc does not belong to the item's campaign")
	ErrChannelGroupNotFound = errors.New("channel group not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrStatusTransition     = errors.New("campaign status transition not allowed")

	// Discount errors
	ErrDiscountScopeRequired  = errors.New("discount must target a campaign or a wave")
	ErrDiscountNotFound       = errors.New("discount not found")
	ErrDiscountTypeInvalid    = errors.New("discount type must be 'client' or 'agency'")
	ErrDiscountPercentInvalid = errors.New("discount percentage must be between 0 and 100")

	// Index errors
	ErrIndexValueInvalid = errors.New("index value must be a positive number")
	ErrMonthOutOfRange   = errors.New("month must be between 1 and 12")

	// Storage conflicts
	ErrDuplicateName  = errors.New("name already exists")
	ErrDuplicateScope = errors.New("an entry for this owner and target group already exists")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrTRPsRequired) ||
		errors.Is(err, ErrClipDurationRequired) ||
		errors.Is(err, ErrTargetGroupRequired) ||
		errors.Is(err, ErrOwnerRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrDateRangeInvalid) ||
		errors.Is(err, ErrPricePerSecRequired) ||
		errors.Is(err, ErrDiscountScopeRequired) ||
		errors.Is(err, ErrDiscountTypeInvalid) ||
		errors.Is(err, ErrDiscountPercentInvalid) ||
		errors.Is(err, ErrIndexValueInvalid) ||
		errors.Is(err, ErrMonthOutOfRange)
}

func IsRateNotFound(err error) bool {
	return errors.Is(err, ErrRateNotFound)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound) ||
		errors.Is(err, ErrWaveNotFound) ||
		errors.Is(err, ErrWaveItemNotFound) ||
		errors.Is(err, ErrTVCNotFound) ||
		errors.Is(err, ErrPricingListNotFound) ||
		errors.Is(err, ErrChannelGroupNotFound) ||
		errors.Is(err, ErrChannelNotFound) ||
		errors.Is(err, ErrDiscountNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrDuplicateScope)
}
