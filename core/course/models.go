package course

import (
	"fmt"
	"strings"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/person"
)

// Course binds an instructor to an ordered set of enrolled students.
// The course does not own its instructor nor its students.
type Course struct {
	Name       string
	Instructor person.Person
	students   []*person.Student
}

func New(name string, instructor person.Person) *Course {
	return &Course{Name: name, Instructor: instructor}
}

// Students returns the enrolled students in enrollment order.
func (c *Course) Students() []*person.Student {
	students := make([]*person.Student, len(c.students))
	copy(students, c.students)
	return students
}

func (c *Course) Size() int { return len(c.students) }

func (c *Course) Has(s *person.Student) bool {
	return c.indexOf(s) >= 0
}

func (c *Course) indexOf(s *person.Student) int {
	for i, enrolled := range c.students {
		if enrolled == s {
			return i
		}
	}
	return -1
}

// AddStudent enrolls s unless it is already enrolled.
func (c *Course) AddStudent(s *person.Student) core.Outcome {
	if s == nil {
		return core.Reject("No student selected.")
	}
	if c.Has(s) {
		return core.Reject(fmt.Sprintf("Student %s is already enrolled in %s.", s.Name(), c.Name))
	}
	c.students = append(c.students, s)
	return core.Accept(fmt.Sprintf("Student %s enrolled in %s.", s.Name(), c.Name))
}

// RemoveStudent withdraws s, keeping the order of the remaining students.
func (c *Course) RemoveStudent(s *person.Student) core.Outcome {
	idx := c.indexOf(s)
	if s == nil || idx < 0 {
		return core.Reject(fmt.Sprintf("Student is not enrolled in %s.", c.Name))
	}
	c.students = append(c.students[:idx], c.students[idx+1:]...)
	return core.Accept(fmt.Sprintf("Student %s removed from %s.", s.Name(), c.Name))
}

func (c *Course) instructorName() string {
	if c.Instructor == nil {
		return "-"
	}
	return c.Instructor.Name()
}

// Describe renders the course name, instructor, enrollment count and student names.
func (c *Course) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", c.Name)
	fmt.Fprintf(&b, "Instructor: %s\n", c.instructorName())
	fmt.Fprintf(&b, "Enrolled students: %d", len(c.students))
	if len(c.students) > 0 {
		b.WriteString("\nStudents:")
		for _, s := range c.students {
			fmt.Fprintf(&b, "\n  - %s", s.Name())
		}
	}
	return b.String()
}
