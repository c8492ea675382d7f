package inmemdb

import (
	"sync"

	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
)

type (
	// DB keeps each collection behind its own lock.
	DB struct {
		people  *personTable
		courses *courseTable
	}

	personTable struct {
		sync.RWMutex
		rows []person.Person
	}

	courseTable struct {
		sync.RWMutex
		rows []*course.Course
	}
)

func Open() (*DB, error) {
	db := &DB{
		people:  &personTable{rows: make([]person.Person, 0)},
		courses: &courseTable{rows: make([]*course.Course, 0)},
	}
	return db, nil
}
