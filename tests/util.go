package testutil

import (
	"testing"

	kitlog "github.com/go-kit/log"

	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
	"github.com/trezcool/classbook/core/registry"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage/database/inmem"
)

// NewRegistry returns a registry service over a fresh in-memory database.
func NewRegistry(t *testing.T) *registry.Service {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	return registry.NewService(inmemdb.NewRegistryRepository(db), logsvc.NewKitLogger(kitlog.NewNopLogger()))
}

func RegisterPerson(t *testing.T, svc *registry.Service, p person.Person) {
	if _, err := svc.RegisterPerson(p); err != nil {
		t.Fatalf("RegisterPerson() failed: %v", err)
	}
}

func CreateSalaried(t *testing.T, svc *registry.Service, name, id string, salary float64) *person.SalariedInstructor {
	si := person.NewSalariedInstructor(name, id, salary)
	RegisterPerson(t, svc, si)
	return si
}

func CreateHourly(t *testing.T, svc *registry.Service, name, id string, hours int, rate float64) *person.HourlyInstructor {
	hi := person.NewHourlyInstructor(name, id, hours, rate)
	RegisterPerson(t, svc, hi)
	return hi
}

func CreateStudent(t *testing.T, svc *registry.Service, name, id string, grades ...float64) *person.Student {
	s := person.NewStudent(name, id)
	for _, g := range grades {
		if out := s.AddGrade(g); !out.Accepted {
			t.Fatalf("CreateStudent() failed: %s", out.Message)
		}
	}
	RegisterPerson(t, svc, s)
	return s
}

func CreateCourse(t *testing.T, svc *registry.Service, name string, instructor person.Person, students ...*person.Student) *course.Course {
	c := course.New(name, instructor)
	for _, s := range students {
		c.AddStudent(s)
	}
	if _, err := svc.RegisterCourse(c); err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}
