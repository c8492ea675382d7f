package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

var errInvalidSelection = core.NewValidationError(
	errors.New("Invalid selection."),
	core.FieldError{Field: "selection", Error: "Invalid selection."},
)

// Prompter reads one answer per line from its input.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line prints label and returns the next input line, without surrounding whitespace.
// It returns io.EOF once the input is exhausted.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return "", io.EOF
	}
	return core.CleanString(p.scanner.Text()), nil
}

func (p *Prompter) Int(label, field string) (int, error) {
	line, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	return parseInt(field, line)
}

func (p *Prompter) Float(label, field string) (float64, error) {
	line, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	return parseFloat(field, line)
}

// Select reads a 1-based choice among n options and returns its 0-based index.
func (p *Prompter) Select(label string, n int) (int, error) {
	line, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	return parseSelection(line, n)
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, core.NewValidationError(
			errors.Wrapf(err, "parsing %s", field),
			core.FieldError{Field: field, Error: field + " must be a whole number"},
		)
	}
	return n, nil
}

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = errors.Errorf("%q is not a finite number", s)
	}
	if err != nil {
		return 0, core.NewValidationError(
			errors.Wrapf(err, "parsing %s", field),
			core.FieldError{Field: field, Error: field + " must be a number"},
		)
	}
	return f, nil
}

func parseSelection(s string, n int) (int, error) {
	sel, err := parseInt("selection", s)
	if err != nil {
		return 0, err
	}
	if err := core.Validate.Var(sel, fmt.Sprintf("min=1,max=%d", n)); err != nil {
		return 0, errInvalidSelection
	}
	return sel - 1, nil
}

// inputError returns the message to show for a rejected input.
func inputError(err error) string {
	if vErr, ok := errors.Cause(err).(*core.ValidationError); ok && len(vErr.Fields) > 0 {
		msg := vErr.Fields[0].Error
		if !strings.HasSuffix(msg, ".") {
			msg += "."
		}
		return "Error: " + msg
	}
	return "Error: " + err.Error()
}
