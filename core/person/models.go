package person

import (
	"fmt"
	"math"
	"strconv"

	"github.com/trezcool/classbook/core"
)

// Kinds
const (
	KindSalariedInstructor Kind = iota + 1
	KindHourlyInstructor
	KindStudent
)

type Kind int

func (k Kind) String() string {
	switch k {
	case KindSalariedInstructor:
		return "Salaried Instructor"
	case KindHourlyInstructor:
		return "Hourly Instructor"
	case KindStudent:
		return "Student"
	default:
		return "Unknown"
	}
}

// IsInstructor reports whether k is one of the instructor kinds.
func (k Kind) IsInstructor() bool {
	return k == KindSalariedInstructor || k == KindHourlyInstructor
}

type (
	// Person is any registered person.
	// The set of implementations is closed: SalariedInstructor, HourlyInstructor and Student.
	Person interface {
		Name() string
		ID() string
		SetName(name string)
		SetID(id string)
		Kind() Kind
		// Describe returns a human readable summary of the person.
		Describe() string

		person()
	}

	// Payable is implemented by people who can be paid.
	Payable interface {
		Person
		// ComputePay fails with ErrInvalidPayment unless the amount is finite and positive.
		ComputePay() (float64, error)
	}

	// Gradeable is implemented by people who can be graded.
	Gradeable interface {
		Person
		// ComputeAverage fails with ErrInvalidAverage when no grade is recorded.
		ComputeAverage() (float64, error)
	}
)

var (
	_ Payable   = (*SalariedInstructor)(nil)
	_ Payable   = (*HourlyInstructor)(nil)
	_ Gradeable = (*Student)(nil)
)

// identity holds the fields shared by all people.
type identity struct {
	name string
	id   string
}

func (p *identity) Name() string        { return p.name }
func (p *identity) ID() string          { return p.id }
func (p *identity) SetName(name string) { p.name = name }
func (p *identity) SetID(id string)     { p.id = id }
func (p *identity) person()             {}

func (p *identity) String() string {
	return fmt.Sprintf("ID: %s, Name: %s", p.id, p.name)
}

// SalariedInstructor is paid a fixed monthly salary.
type SalariedInstructor struct {
	identity
	MonthlySalary float64
}

func NewSalariedInstructor(name, id string, monthlySalary float64) *SalariedInstructor {
	return &SalariedInstructor{
		identity:      identity{name: name, id: id},
		MonthlySalary: monthlySalary,
	}
}

func (si *SalariedInstructor) Kind() Kind { return KindSalariedInstructor }

func (si *SalariedInstructor) ComputePay() (float64, error) {
	if !validPayment(si.MonthlySalary) {
		return 0, &PaymentError{
			Amount: si.MonthlySalary,
			Reason: fmt.Sprintf("monthly salary must be greater than 0 (current salary: %s)", core.FormatNumber(si.MonthlySalary)),
		}
	}
	return si.MonthlySalary, nil
}

func (si *SalariedInstructor) Describe() string {
	return fmt.Sprintf("%s - %s, Monthly Salary: %s", si.Kind(), si.identity.String(), core.FormatMoney(si.MonthlySalary))
}

// validPayment reports whether amount is a finite amount greater than 0.
func validPayment(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

// HourlyInstructor is paid for the hours worked.
type HourlyInstructor struct {
	identity
	HoursWorked int
	Rate        float64
}

func NewHourlyInstructor(name, id string, hoursWorked int, rate float64) *HourlyInstructor {
	return &HourlyInstructor{
		identity:    identity{name: name, id: id},
		HoursWorked: hoursWorked,
		Rate:        rate,
	}
}

func (hi *HourlyInstructor) Kind() Kind { return KindHourlyInstructor }

func (hi *HourlyInstructor) ComputePay() (float64, error) {
	total := float64(hi.HoursWorked) * hi.Rate
	if !validPayment(total) {
		return 0, &PaymentError{
			Amount: total,
			Reason: fmt.Sprintf("total payment must be greater than 0 (computed payment: %s)", core.FormatNumber(total)),
		}
	}
	return total, nil
}

func (hi *HourlyInstructor) Describe() string {
	return fmt.Sprintf("%s - %s, Hours: %d, Rate: %s", hi.Kind(), hi.identity.String(), hi.HoursWorked, core.FormatMoney(hi.Rate))
}

// Student holds an append-only sequence of grades.
type Student struct {
	identity
	grades []float64
}

func NewStudent(name, id string) *Student {
	return &Student{identity: identity{name: name, id: id}}
}

func (s *Student) Kind() Kind { return KindStudent }

// Grades returns a copy of the recorded grades, in insertion order.
func (s *Student) Grades() []float64 {
	grades := make([]float64, len(s.grades))
	copy(grades, s.grades)
	return grades
}

// AddGrade records grade if it is within [MinGrade, MaxGrade].
// Out of range grades are rejected and nothing is stored.
func (s *Student) AddGrade(grade float64) core.Outcome {
	if err := ValidateGrade(grade); err != nil {
		return core.Reject(core.TranslateError(err))
	}
	s.grades = append(s.grades, grade)
	return core.Accept(fmt.Sprintf("Grade %s added to %s.", strconv.FormatFloat(grade, 'f', -1, 64), s.name))
}

func (s *Student) ComputeAverage() (float64, error) {
	if len(s.grades) == 0 {
		return 0, &AverageError{Reason: fmt.Sprintf("student %s has no recorded grades", s.name)}
	}
	var sum float64
	for _, g := range s.grades {
		sum += g
	}
	return sum / float64(len(s.grades)), nil
}

// Describe includes the average, or the reason it cannot be computed.
func (s *Student) Describe() string {
	desc := fmt.Sprintf("%s - %s, Grades: %s", s.Kind(), s.identity.String(), core.FormatList(s.grades))
	avg, err := s.ComputeAverage()
	if err != nil {
		return desc + "\nError: " + err.Error()
	}
	return desc + "\nAverage: " + core.FormatNumber(avg)
}
