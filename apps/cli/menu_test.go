package cli

import (
	"bytes"
	"strings"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classbook/core/registry"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/tests"
)

const goodbye = "Exiting Academic Records. Goodbye!"

func runMenu(t *testing.T, svc *registry.Service, input string, opts Options) string {
	if opts.AppName == "" {
		opts.AppName = "Academic Records"
	}
	out := new(bytes.Buffer)
	m := NewMenu(svc, logsvc.NewKitLogger(kitlog.NewNopLogger()), strings.NewReader(input), out, opts)
	require.NoError(t, m.Run())
	return out.String()
}

func TestMenu_Run(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, svc *registry.Service)
		input     string
		want      []string
		doNotWant []string
	}{
		{
			name:  "exit",
			input: "0\n",
			want:  []string{"14. Edit Person", "0. Exit", "Select an option: ", goodbye},
		},
		{
			name:  "input ends",
			input: "",
			want:  []string{goodbye},
		},
		{
			name:  "input ends mid action",
			input: "1\nAna\n",
			want:  []string{"Name: ID: ", goodbye},
		},
		{
			name:  "invalid option",
			input: "99\nabc\n0\n",
			want:  []string{"Invalid option. Please select a valid option.", goodbye},
		},
		{
			name:      "register salaried instructor",
			input:     "1\nBob\nP2\n1500\n7\n0\n",
			want:      []string{"Person registered: Bob", "Salaried Instructor - ID: P2, Name: Bob, Monthly Salary: $1,500.00"},
			doNotWant: []string{"Error:"},
		},
		{
			name:      "invalid salary",
			input:     "1\nBob\nP2\nabc\n7\n0\n",
			want:      []string{"Error: salary must be a number.", "No people registered."},
			doNotWant: []string{"Person registered"},
		},
		{
			name:      "non-finite rate",
			input:     "2\nAna\nP1\n10\nNaN\n9\n0\n",
			want:      []string{"Error: rate must be a number.", "No instructors registered."},
			doNotWant: []string{"$NaN"},
		},
		{
			name:  "invalid hours",
			input: "2\nAna\nP1\n1.5\n0\n",
			want:  []string{"Error: hours must be a whole number."},
		},
		{
			name:  "course requires an instructor",
			input: "4\n0\n",
			want:  []string{"No instructors registered. Register an instructor first."},
		},
		{
			name: "blank course name",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
			},
			input:     "4\n  \n8\n0\n",
			want:      []string{"Error: course name cannot be blank.", "No courses registered."},
			doNotWant: []string{"Course registered"},
		},
		{
			name:  "enrollment requires a course",
			input: "5\n0\n",
			want:  []string{"No courses registered. Create a course first."},
		},
		{
			name: "enrollment requires a student",
			setup: func(t *testing.T, svc *registry.Service) {
				ana := testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
				testutil.CreateCourse(t, svc, "CS101", ana)
			},
			input: "5\n0\n",
			want:  []string{"No students registered. Register a student first."},
		},
		{
			name: "duplicate enrollment",
			setup: func(t *testing.T, svc *registry.Service) {
				ana := testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
				leo := testutil.CreateStudent(t, svc, "Leo", "S1")
				testutil.CreateCourse(t, svc, "CS101", ana, leo)
			},
			input: "5\n1\n1\n0\n",
			want:  []string{"1. CS101 (1 enrolled)", "1. Leo (ID: S1)", "Student Leo is already enrolled in CS101."},
		},
		{
			name:  "grading requires a student",
			input: "6\n0\n",
			want:  []string{"No students registered. Register a student first."},
		},
		{
			name: "grade out of range",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateStudent(t, svc, "Leo", "S1", 5)
			},
			input:     "6\n1\n10.5\n7\n0\n",
			want:      []string{"grade must be between 0 and 10", "Grades: [5]"},
			doNotWant: []string{"added to Leo"},
		},
		{
			name: "invalid selection",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateStudent(t, svc, "Leo", "S1")
			},
			input: "6\n2\n0\n",
			want:  []string{"Error: Invalid selection."},
		},
		{
			name:  "empty collections",
			input: "7\n8\n9\n10\n0\n",
			want: []string{
				"No people registered.",
				"No courses registered.",
				"No instructors registered.",
				"No students registered.",
			},
		},
		{
			name: "payment errors do not stop the batch",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateSalaried(t, svc, "Bad", "P0", 0)
				testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
			},
			input: "9\n0\n",
			want:  []string{"=== PROCESS PAYMENTS ===", "Payment error for Bad: monthly salary must be greater than 0", "Payment for Ana: $50.00"},
		},
		{
			name: "average errors do not stop the batch",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateStudent(t, svc, "Mia", "S2")
				testutil.CreateStudent(t, svc, "Leo", "S1", 7, 9)
			},
			input: "10\n0\n",
			want:  []string{"Average error for Mia: student Mia has no recorded grades", "Average for Leo: 8.00"},
		},
		{
			name: "find person by id",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateStudent(t, svc, "Leo", "S1", 7, 9)
			},
			input: "11\ns1\n11\nX9\n0\n",
			want: []string{
				"Person found:",
				"Student - ID: S1, Name: Leo, Grades: [7, 9]\nAverage: 8.00",
				`No person found with ID "X9".`,
			},
		},
		{
			name: "find course by name",
			setup: func(t *testing.T, svc *registry.Service) {
				ana := testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
				testutil.CreateCourse(t, svc, "Physics", ana)
			},
			input: "12\nphys\n12\nPhisics 2\n12\nzzz\n0\n",
			want: []string{
				"Course found:",
				"Course: Physics\nInstructor: Ana",
				`No course found matching "Phisics 2". Did you mean "Physics"?`,
				`No course found matching "zzz".`,
			},
		},
		{
			name: "blank course search",
			setup: func(t *testing.T, svc *registry.Service) {
				ana := testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
				testutil.CreateCourse(t, svc, "Physics", ana)
			},
			input:     "12\n   \n0\n",
			want:      []string{"Error: course name to search cannot be blank."},
			doNotWant: []string{"Course found:", "Course: Physics"},
		},
		{
			name: "remove student from course",
			setup: func(t *testing.T, svc *registry.Service) {
				ana := testutil.CreateHourly(t, svc, "Ana", "P1", 10, 5)
				leo := testutil.CreateStudent(t, svc, "Leo", "S1")
				testutil.CreateCourse(t, svc, "CS101", ana, leo)
			},
			input: "13\n1\n1\n13\n1\n0\n",
			want:  []string{"Student Leo removed from CS101.", "No students enrolled in CS101."},
		},
		{
			name: "edit person",
			setup: func(t *testing.T, svc *registry.Service) {
				testutil.CreateStudent(t, svc, "Leo", "S1")
			},
			input: "14\n1\nLeonardo\n\n14\n1\n\n\n0\n",
			want: []string{
				"New name (blank keeps Leo): ",
				"Person updated: Leonardo (ID: S1)",
				"New name (blank keeps Leonardo): ",
				"Nothing to update.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewRegistry(t)
			if tt.setup != nil {
				tt.setup(t, svc)
			}
			got := runMenu(t, svc, tt.input, Options{})
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, dnw := range tt.doNotWant {
				assert.NotContains(t, got, dnw)
			}
		})
	}
}

func TestMenu_Run_presentation(t *testing.T) {
	svc := testutil.NewRegistry(t)

	got := runMenu(t, svc, "0\n", Options{})
	assert.NotContains(t, got, "build develop")
	assert.NotContains(t, got, clearScreenSeq)

	got = runMenu(t, svc, "0\n", Options{Build: "develop", Banner: true, ClearScreen: true})
	assert.Contains(t, got, "build develop")
	assert.Contains(t, got, clearScreenSeq)

	got = runMenu(t, svc, "7\n\n0\n", Options{Pause: true})
	assert.Contains(t, got, "Press Enter to continue...")
	assert.Contains(t, got, goodbye)
}

func TestMenu_Run_endToEnd(t *testing.T) {
	svc := testutil.NewRegistry(t)

	input := strings.Join([]string{
		"2", "Ana", "P1", "10", "5", // hourly instructor
		"3", "Leo", "S1", // student
		"4", "CS101", "1", // course taught by Ana
		"5", "1", "1", // enroll Leo
		"6", "1", "7",
		"6", "1", "9",
		"9",
		"10",
		"0",
	}, "\n") + "\n"
	got := runMenu(t, svc, input, Options{})

	for _, want := range []string{
		"Person registered: Ana",
		"Person registered: Leo",
		"Course registered: CS101",
		"Student Leo enrolled in CS101.",
		"Grade 7 added to Leo.",
		"Grade 9 added to Leo.",
		"Payment for Ana: $50.00",
		"Average for Leo: 8.00",
		goodbye,
	} {
		assert.Contains(t, got, want)
	}

	c, err := svc.FindCourseByName("cs101")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, "Ana", c.Instructor.Name())
}
