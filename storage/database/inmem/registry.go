package inmemdb

import (
	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
	"github.com/trezcool/classbook/core/registry"
)

type registryRepository struct {
	people  *personTable
	courses *courseTable
}

var _ registry.Repository = (*registryRepository)(nil) // interface compliance check

func NewRegistryRepository(db *DB) registry.Repository {
	return &registryRepository{people: db.people, courses: db.courses}
}

func (repo *registryRepository) CreatePerson(p person.Person) error {
	repo.people.Lock()
	defer repo.people.Unlock()

	repo.people.rows = append(repo.people.rows, p)
	return nil
}

func (repo *registryRepository) QueryAllPeople() ([]person.Person, error) {
	repo.people.RLock()
	defer repo.people.RUnlock()

	people := make([]person.Person, len(repo.people.rows))
	copy(people, repo.people.rows)
	return people, nil
}

func (repo *registryRepository) ViewPeople(view func([]person.Person) error) error {
	repo.people.RLock()
	defer repo.people.RUnlock()

	people := make([]person.Person, len(repo.people.rows))
	copy(people, repo.people.rows)
	return view(people)
}

func (repo *registryRepository) UpdatePerson(p person.Person, update func(person.Person) core.Outcome) (core.Outcome, error) {
	repo.people.Lock()
	defer repo.people.Unlock()

	for _, row := range repo.people.rows {
		if row == p {
			return update(row), nil
		}
	}
	return core.Outcome{}, registry.ErrPersonNotFound
}

func (repo *registryRepository) CreateCourse(c *course.Course) error {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	repo.courses.rows = append(repo.courses.rows, c)
	return nil
}

func (repo *registryRepository) QueryAllCourses() ([]*course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	courses := make([]*course.Course, len(repo.courses.rows))
	copy(courses, repo.courses.rows)
	return courses, nil
}

// ViewCourses also read-locks the people, since courses render their instructor and students.
// Courses are always locked before people.
func (repo *registryRepository) ViewCourses(view func([]*course.Course) error) error {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	repo.people.RLock()
	defer repo.people.RUnlock()

	courses := make([]*course.Course, len(repo.courses.rows))
	copy(courses, repo.courses.rows)
	return view(courses)
}

func (repo *registryRepository) UpdateCourse(c *course.Course, update func(*course.Course) core.Outcome) (core.Outcome, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()
	repo.people.RLock()
	defer repo.people.RUnlock()

	for _, row := range repo.courses.rows {
		if row == c {
			return update(row), nil
		}
	}
	return core.Outcome{}, registry.ErrCourseNotFound
}
