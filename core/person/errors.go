package person

import "errors"

var (
	// errors
	ErrInvalidPayment = errors.New("invalid payment")
	ErrInvalidAverage = errors.New("invalid average")
)

// PaymentError is returned when a computed payment is not positive.
type PaymentError struct {
	Amount float64
	Reason string
}

func (err *PaymentError) Error() string { return err.Reason }

func (err *PaymentError) Is(target error) bool { return target == ErrInvalidPayment }

// AverageError is returned when an average is computed without any grade.
type AverageError struct {
	Reason string
}

func (err *AverageError) Error() string { return err.Reason }

func (err *AverageError) Is(target error) bool { return target == ErrInvalidAverage }
