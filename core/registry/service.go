package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
)

var (
	// errors
	ErrPersonNotFound = errors.New("person not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrNoPeople       = errors.New("no people registered")
	ErrNoCourses      = errors.New("no courses registered")
	ErrNoInstructors  = errors.New("no instructors registered")
	ErrNoStudents     = errors.New("no students registered")

	// minimum similarity for a course name to be suggested
	suggestionMinRatio = .6
)

type (
	// Repository stores people and courses in registration order.
	// Update* run the given command under the write boundary of the owning collection.
	// View* run the given read under its read boundary; views must not call back into the Repository.
	// Course boundaries also cover reading the people they refer to.
	Repository interface {
		CreatePerson(p person.Person) error
		QueryAllPeople() ([]person.Person, error)
		ViewPeople(view func(people []person.Person) error) error
		UpdatePerson(p person.Person, update func(p person.Person) core.Outcome) (core.Outcome, error)
		CreateCourse(c *course.Course) error
		QueryAllCourses() ([]*course.Course, error)
		ViewCourses(view func(courses []*course.Course) error) error
		UpdateCourse(c *course.Course, update func(c *course.Course) core.Outcome) (core.Outcome, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}

	PaymentResult struct {
		Payee  person.Payable
		Name   string // payee name at computation time
		Amount float64
		Err    error // matches person.ErrInvalidPayment
	}

	AverageResult struct {
		Student person.Gradeable
		Name    string // student name at computation time
		Average float64
		Err     error // matches person.ErrInvalidAverage
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterPerson appends p to the people. IDs are not checked for uniqueness.
func (svc *Service) RegisterPerson(p person.Person) (core.Outcome, error) {
	if p == nil {
		return core.Reject("No person to register."), nil
	}
	name, id := p.Name(), p.ID()
	if err := svc.repo.CreatePerson(p); err != nil {
		return core.Outcome{}, err
	}
	svc.logger.Info("person registered", map[string]interface{}{"id": id, "kind": p.Kind().String()})
	return core.Accept("Person registered: " + name), nil
}

// RegisterCourse appends c to the courses. Names are not checked for uniqueness.
func (svc *Service) RegisterCourse(c *course.Course) (core.Outcome, error) {
	if c == nil {
		return core.Reject("No course to register."), nil
	}
	name := c.Name
	if err := svc.repo.CreateCourse(c); err != nil {
		return core.Outcome{}, err
	}
	svc.logger.Info("course registered", map[string]interface{}{"course": name})
	return core.Accept("Course registered: " + name), nil
}

// ListPeople describes every registered person, in registration order.
func (svc *Service) ListPeople() ([]string, error) {
	var descs []string
	err := svc.repo.ViewPeople(func(people []person.Person) error {
		if len(people) == 0 {
			return ErrNoPeople
		}
		descs = make([]string, 0, len(people))
		for _, p := range people {
			descs = append(descs, p.Describe())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return descs, nil
}

// ListCourses describes every registered course, in registration order.
func (svc *Service) ListCourses() ([]string, error) {
	var descs []string
	err := svc.repo.ViewCourses(func(courses []*course.Course) error {
		if len(courses) == 0 {
			return ErrNoCourses
		}
		descs = make([]string, 0, len(courses))
		for _, c := range courses {
			descs = append(descs, c.Describe())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return descs, nil
}

// ProcessPayments computes the pay of every Payable person.
// An invalid payment is reported in its result and never stops the batch.
func (svc *Service) ProcessPayments() ([]PaymentResult, error) {
	var results []PaymentResult
	err := svc.repo.ViewPeople(func(people []person.Person) error {
		for _, p := range people {
			payee, ok := p.(person.Payable)
			if !ok {
				continue
			}
			amount, err := payee.ComputePay()
			results = append(results, PaymentResult{Payee: payee, Name: payee.Name(), Amount: amount, Err: err})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoInstructors
	}
	for _, res := range results {
		if res.Err != nil {
			svc.logger.Warn("invalid payment", res.Err, map[string]interface{}{"name": res.Name})
		}
	}
	return results, nil
}

// ProcessAverages computes the average of every Gradeable person.
// An invalid average is reported in its result and never stops the batch.
func (svc *Service) ProcessAverages() ([]AverageResult, error) {
	var results []AverageResult
	err := svc.repo.ViewPeople(func(people []person.Person) error {
		for _, p := range people {
			student, ok := p.(person.Gradeable)
			if !ok {
				continue
			}
			avg, err := student.ComputeAverage()
			results = append(results, AverageResult{Student: student, Name: student.Name(), Average: avg, Err: err})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoStudents
	}
	for _, res := range results {
		if res.Err != nil {
			svc.logger.Warn("invalid average", res.Err, map[string]interface{}{"name": res.Name})
		}
	}
	return results, nil
}

// FindPersonByID returns the first person whose ID matches id, ignoring case.
func (svc *Service) FindPersonByID(id string) (person.Person, error) {
	var found person.Person
	err := svc.repo.ViewPeople(func(people []person.Person) error {
		for _, p := range people {
			if strings.EqualFold(p.ID(), id) {
				found = p
				return nil
			}
		}
		return ErrPersonNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindCourseByName returns the first course whose name contains name, ignoring case.
func (svc *Service) FindCourseByName(name string) (*course.Course, error) {
	var found *course.Course
	err := svc.repo.ViewCourses(func(courses []*course.Course) error {
		for _, c := range courses {
			if core.ContainsFold(c.Name, name) {
				found = c
				return nil
			}
		}
		return ErrCourseNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// SuggestCourseName returns the registered course name most similar to name, if any is similar enough.
func (svc *Service) SuggestCourseName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	query := strings.Split(strings.ToLower(name), "")
	var (
		best      string
		bestRatio float64
	)
	err := svc.repo.ViewCourses(func(courses []*course.Course) error {
		for _, c := range courses {
			ratio := difflib.NewMatcher(query, strings.Split(strings.ToLower(c.Name), "")).Ratio()
			if ratio > bestRatio {
				best, bestRatio = c.Name, ratio
			}
		}
		return nil
	})
	if err != nil {
		return "", false
	}
	return best, bestRatio >= suggestionMinRatio
}

// DescribePerson renders p the way ListPeople does.
func (svc *Service) DescribePerson(p person.Person) (string, error) {
	var desc string
	err := svc.repo.ViewPeople(func([]person.Person) error {
		desc = p.Describe()
		return nil
	})
	return desc, err
}

// DescribeCourse renders c the way ListCourses does.
func (svc *Service) DescribeCourse(c *course.Course) (string, error) {
	var desc string
	err := svc.repo.ViewCourses(func([]*course.Course) error {
		desc = c.Describe()
		return nil
	})
	return desc, err
}

// Roster returns the students enrolled in c, in enrollment order.
func (svc *Service) Roster(c *course.Course) ([]*person.Student, error) {
	var students []*person.Student
	err := svc.repo.ViewCourses(func([]*course.Course) error {
		students = c.Students()
		return nil
	})
	return students, err
}

// People returns every registered person, in registration order.
func (svc *Service) People() ([]person.Person, error) {
	return svc.repo.QueryAllPeople()
}

// Instructors returns the salaried and hourly instructors, in registration order.
func (svc *Service) Instructors() ([]person.Person, error) {
	people, err := svc.repo.QueryAllPeople()
	if err != nil {
		return nil, err
	}
	instructors := make([]person.Person, 0, len(people))
	for _, p := range people {
		if p.Kind().IsInstructor() {
			instructors = append(instructors, p)
		}
	}
	return instructors, nil
}

// Students returns the students, in registration order.
func (svc *Service) Students() ([]*person.Student, error) {
	people, err := svc.repo.QueryAllPeople()
	if err != nil {
		return nil, err
	}
	students := make([]*person.Student, 0, len(people))
	for _, p := range people {
		if s, ok := p.(*person.Student); ok {
			students = append(students, s)
		}
	}
	return students, nil
}

// Courses returns the courses, in registration order.
func (svc *Service) Courses() ([]*course.Course, error) {
	return svc.repo.QueryAllCourses()
}

// Enroll adds s to c.
func (svc *Service) Enroll(c *course.Course, s *person.Student) (core.Outcome, error) {
	return svc.repo.UpdateCourse(c, func(c *course.Course) core.Outcome {
		return c.AddStudent(s)
	})
}

// Withdraw removes s from c.
func (svc *Service) Withdraw(c *course.Course, s *person.Student) (core.Outcome, error) {
	return svc.repo.UpdateCourse(c, func(c *course.Course) core.Outcome {
		return c.RemoveStudent(s)
	})
}

// AddGrade records grade for s.
func (svc *Service) AddGrade(s *person.Student, grade float64) (core.Outcome, error) {
	return svc.repo.UpdatePerson(s, func(person.Person) core.Outcome {
		return s.AddGrade(grade)
	})
}

// UpdatePerson defines what may be changed on a registered person.
// Blank fields keep their current value.
type UpdatePerson struct {
	Name string
	ID   string
}

// Edit renames and/or re-identifies p.
func (svc *Service) Edit(p person.Person, up UpdatePerson) (core.Outcome, error) {
	name := core.CleanString(up.Name)
	id := core.CleanString(up.ID)
	return svc.repo.UpdatePerson(p, func(p person.Person) core.Outcome {
		if name == "" && id == "" {
			return core.Reject("Nothing to update.")
		}
		if name != "" {
			p.SetName(name)
		}
		if id != "" {
			p.SetID(id)
		}
		return core.Accept(fmt.Sprintf("Person updated: %s (ID: %s)", p.Name(), p.ID()))
	})
}
