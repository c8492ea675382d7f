package core

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// Outcome is the reported result of a validated command.
// A rejected command never mutates state.
type Outcome struct {
	Accepted bool
	Message  string
}

func Accept(msg string) Outcome { return Outcome{Accepted: true, Message: msg} }
func Reject(msg string) Outcome { return Outcome{Accepted: false, Message: msg} }

func (o Outcome) String() string { return o.Message }
