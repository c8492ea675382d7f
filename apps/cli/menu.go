package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
	"github.com/trezcool/classbook/core/registry"
)

const exitKey = "0"

type menuItem struct {
	key    string
	label  string
	action func() error
}

// Options controls how the menu is presented.
type Options struct {
	AppName     string
	Build       string
	Banner      bool
	Pause       bool // wait for Enter after each action
	ClearScreen bool
}

// Menu drives the registry from a line-oriented prompt.
type Menu struct {
	svc    *registry.Service
	logger core.Logger
	prompt *Prompter
	out    io.Writer
	opts   Options
	items  []menuItem
}

func NewMenu(svc *registry.Service, logger core.Logger, in io.Reader, out io.Writer, opts Options) *Menu {
	m := &Menu{
		svc:    svc,
		logger: logger,
		prompt: NewPrompter(in, out),
		out:    out,
		opts:   opts,
	}
	m.items = []menuItem{
		{"1", "Register Salaried Instructor", m.registerSalaried},
		{"2", "Register Hourly Instructor", m.registerHourly},
		{"3", "Register Student", m.registerStudent},
		{"4", "Create Course", m.createCourse},
		{"5", "Enroll Student in Course", m.enroll},
		{"6", "Add Grade to Student", m.addGrade},
		{"7", "List All People", m.listPeople},
		{"8", "List All Courses", m.listCourses},
		{"9", "Process Payments", m.processPayments},
		{"10", "Process Averages", m.processAverages},
		{"11", "Find Person by ID", m.findPerson},
		{"12", "Find Course by Name", m.findCourse},
		{"13", "Remove Student from Course", m.withdraw},
		{"14", "Edit Person", m.editPerson},
	}
	return m
}

// Run shows the menu until the user exits or the input ends.
func (m *Menu) Run() error {
	if m.opts.Banner {
		fmt.Fprintln(m.out, renderBanner(m.opts.AppName, m.opts.Build))
	}
	for {
		if m.opts.ClearScreen {
			fmt.Fprint(m.out, clearScreenSeq)
		}
		fmt.Fprintln(m.out, renderMenu(m.opts.AppName, m.items))

		choice, err := m.prompt.Line("Select an option: ")
		if err != nil {
			return m.stop(err)
		}
		if choice == exitKey {
			return m.stop(nil)
		}

		if err := m.dispatch(choice); err != nil {
			return m.stop(err)
		}
		if err := m.pause(); err != nil {
			return m.stop(err)
		}
	}
}

// dispatch runs the action behind choice. Only input errors are returned.
func (m *Menu) dispatch(choice string) error {
	var item *menuItem
	for i := range m.items {
		if m.items[i].key == choice {
			item = &m.items[i]
			break
		}
	}
	if item == nil {
		fmt.Fprintln(m.out, renderError("Invalid option. Please select a valid option."))
		return nil
	}

	m.logger.Debug("menu option selected", map[string]interface{}{"option": item.key, "label": item.label})
	fmt.Fprintln(m.out, renderHeader(item.label))
	err := item.action()
	switch {
	case err == nil:
		return nil
	case err == io.EOF:
		return err
	case isValidationError(err):
		fmt.Fprintln(m.out, renderError(inputError(err)))
		return nil
	default:
		m.logger.Error(fmt.Sprintf("%s failed", item.label), err)
		fmt.Fprintln(m.out, renderError("Error: "+err.Error()))
		return nil
	}
}

func (m *Menu) pause() error {
	if !m.opts.Pause {
		return nil
	}
	_, err := m.prompt.Line("\nPress Enter to continue...")
	return err
}

// stop ends the session; running out of input is a normal exit.
func (m *Menu) stop(err error) error {
	if err != nil && err != io.EOF {
		return err
	}
	fmt.Fprintf(m.out, "Exiting %s. Goodbye!\n", m.opts.AppName)
	return nil
}

func isValidationError(err error) bool {
	var vErr *core.ValidationError
	return errors.As(err, &vErr)
}

func (m *Menu) report(outcome core.Outcome, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, renderOutcome(outcome))
	return nil
}

func (m *Menu) readIdentity() (name, id string, err error) {
	if name, err = m.prompt.Line("Name: "); err != nil {
		return "", "", err
	}
	if id, err = m.prompt.Line("ID: "); err != nil {
		return "", "", err
	}
	return name, id, nil
}

func (m *Menu) registerSalaried() error {
	name, id, err := m.readIdentity()
	if err != nil {
		return err
	}
	salary, err := m.prompt.Float("Monthly salary: ", "salary")
	if err != nil {
		return err
	}
	return m.report(m.svc.RegisterPerson(person.NewSalariedInstructor(name, id, salary)))
}

func (m *Menu) registerHourly() error {
	name, id, err := m.readIdentity()
	if err != nil {
		return err
	}
	hours, err := m.prompt.Int("Hours worked: ", "hours")
	if err != nil {
		return err
	}
	rate, err := m.prompt.Float("Hourly rate: ", "rate")
	if err != nil {
		return err
	}
	return m.report(m.svc.RegisterPerson(person.NewHourlyInstructor(name, id, hours, rate)))
}

func (m *Menu) registerStudent() error {
	name, id, err := m.readIdentity()
	if err != nil {
		return err
	}
	return m.report(m.svc.RegisterPerson(person.NewStudent(name, id)))
}

func (m *Menu) createCourse() error {
	instructors, err := m.svc.Instructors()
	if err != nil {
		return err
	}
	if len(instructors) == 0 {
		fmt.Fprintln(m.out, "No instructors registered. Register an instructor first.")
		return nil
	}

	name, err := m.prompt.Line("Course name: ")
	if err != nil {
		return err
	}
	if err := core.Validate.Var(name, "notblank"); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "name", Error: "course name cannot be blank"})
	}

	fmt.Fprintln(m.out, "Available instructors:")
	choices := make([]string, 0, len(instructors))
	for _, p := range instructors {
		choices = append(choices, renderChoice(p))
	}
	printChoices(m.out, choices)
	i, err := m.prompt.Select("Select instructor: ", len(instructors))
	if err != nil {
		return err
	}
	return m.report(m.svc.RegisterCourse(course.New(name, instructors[i])))
}

func (m *Menu) selectCourse(courses []*course.Course) (*course.Course, error) {
	fmt.Fprintln(m.out, "Available courses:")
	choices := make([]string, 0, len(courses))
	for _, c := range courses {
		choices = append(choices, courseChoice(c))
	}
	printChoices(m.out, choices)
	i, err := m.prompt.Select("Select course: ", len(courses))
	if err != nil {
		return nil, err
	}
	return courses[i], nil
}

func (m *Menu) selectStudent(students []*person.Student) (*person.Student, error) {
	fmt.Fprintln(m.out, "Available students:")
	choices := make([]string, 0, len(students))
	for _, s := range students {
		choices = append(choices, renderChoice(s))
	}
	printChoices(m.out, choices)
	i, err := m.prompt.Select("Select student: ", len(students))
	if err != nil {
		return nil, err
	}
	return students[i], nil
}

func (m *Menu) enroll() error {
	courses, err := m.svc.Courses()
	if err != nil {
		return err
	}
	students, err := m.svc.Students()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(m.out, "No courses registered. Create a course first.")
		return nil
	}
	if len(students) == 0 {
		fmt.Fprintln(m.out, "No students registered. Register a student first.")
		return nil
	}

	c, err := m.selectCourse(courses)
	if err != nil {
		return err
	}
	s, err := m.selectStudent(students)
	if err != nil {
		return err
	}
	return m.report(m.svc.Enroll(c, s))
}

func (m *Menu) withdraw() error {
	courses, err := m.svc.Courses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(m.out, "No courses registered. Create a course first.")
		return nil
	}

	c, err := m.selectCourse(courses)
	if err != nil {
		return err
	}
	enrolled, err := m.svc.Roster(c)
	if err != nil {
		return err
	}
	if len(enrolled) == 0 {
		fmt.Fprintf(m.out, "No students enrolled in %s.\n", c.Name)
		return nil
	}
	s, err := m.selectStudent(enrolled)
	if err != nil {
		return err
	}
	return m.report(m.svc.Withdraw(c, s))
}

func (m *Menu) addGrade() error {
	students, err := m.svc.Students()
	if err != nil {
		return err
	}
	if len(students) == 0 {
		fmt.Fprintln(m.out, "No students registered. Register a student first.")
		return nil
	}

	s, err := m.selectStudent(students)
	if err != nil {
		return err
	}
	grade, err := m.prompt.Float("Grade (0-10): ", "grade")
	if err != nil {
		return err
	}
	return m.report(m.svc.AddGrade(s, grade))
}

func (m *Menu) listPeople() error {
	descs, err := m.svc.ListPeople()
	if msg, ok := emptyMessage(err); ok {
		fmt.Fprintln(m.out, msg)
		return nil
	}
	if err != nil {
		return err
	}
	printDescriptions(m.out, descs)
	return nil
}

func (m *Menu) listCourses() error {
	descs, err := m.svc.ListCourses()
	if msg, ok := emptyMessage(err); ok {
		fmt.Fprintln(m.out, msg)
		return nil
	}
	if err != nil {
		return err
	}
	printDescriptions(m.out, descs)
	return nil
}

func (m *Menu) processPayments() error {
	results, err := m.svc.ProcessPayments()
	if msg, ok := emptyMessage(err); ok {
		fmt.Fprintln(m.out, msg)
		return nil
	}
	if err != nil {
		return err
	}
	printPayments(m.out, results)
	return nil
}

func (m *Menu) processAverages() error {
	results, err := m.svc.ProcessAverages()
	if msg, ok := emptyMessage(err); ok {
		fmt.Fprintln(m.out, msg)
		return nil
	}
	if err != nil {
		return err
	}
	printAverages(m.out, results)
	return nil
}

func (m *Menu) findPerson() error {
	id, err := m.prompt.Line("ID to search: ")
	if err != nil {
		return err
	}
	p, err := m.svc.FindPersonByID(id)
	if errors.Is(err, registry.ErrPersonNotFound) {
		fmt.Fprintf(m.out, "No person found with ID %q.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	desc, err := m.svc.DescribePerson(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Person found:")
	fmt.Fprintln(m.out, desc)
	return nil
}

func (m *Menu) findCourse() error {
	name, err := m.prompt.Line("Course name to search: ")
	if err != nil {
		return err
	}
	if err := core.Validate.Var(name, "notblank"); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "name", Error: "course name to search cannot be blank"})
	}
	c, err := m.svc.FindCourseByName(name)
	if errors.Is(err, registry.ErrCourseNotFound) {
		suggestion, ok := m.svc.SuggestCourseName(name)
		fmt.Fprintln(m.out, courseNotFound(name, suggestion, ok))
		return nil
	}
	if err != nil {
		return err
	}
	desc, err := m.svc.DescribeCourse(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Course found:")
	fmt.Fprintln(m.out, desc)
	return nil
}

func (m *Menu) editPerson() error {
	people, err := m.svc.People()
	if err != nil {
		return err
	}
	if len(people) == 0 {
		fmt.Fprintln(m.out, "No people registered.")
		return nil
	}

	fmt.Fprintln(m.out, "Registered people:")
	choices := make([]string, 0, len(people))
	for _, p := range people {
		choices = append(choices, renderChoice(p))
	}
	printChoices(m.out, choices)
	i, err := m.prompt.Select("Select person: ", len(people))
	if err != nil {
		return err
	}
	p := people[i]

	var up registry.UpdatePerson
	if up.Name, err = m.prompt.Line(fmt.Sprintf("New name (blank keeps %s): ", p.Name())); err != nil {
		return err
	}
	if up.ID, err = m.prompt.Line(fmt.Sprintf("New ID (blank keeps %s): ", p.ID())); err != nil {
		return err
	}
	return m.report(m.svc.Edit(p, up))
}
