package wage

import "errors"

var (
	ErrBatchNotFound         = errors.New("approval batch not found")
	ErrBatchAlreadyExists    = errors.New("an approval batch already exists or is approved for this period")
	ErrEmptyBatch            = errors.New("no wage records to submit for this period")
	ErrRecordNotFound        = errors.New("wage record not found")
	ErrConfirmationMismatch  = errors.New("confirmation secret does not match")
	ErrInvalidStatus         = errors.New("invalid batch status")
	ErrPeriodNotEligible     = errors.New("period is not eligible for submission")
)
