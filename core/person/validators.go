package person

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classbook/core"
)

const (
	MinGrade = 0.0
	MaxGrade = 10.0
)

var (
	gradeTag  = "grade"
	gradeText = "grade must be between 0 and 10"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(gradeTag, gradeText)
}

// ValidateGrade checks that grade is within [MinGrade, MaxGrade].
func ValidateGrade(grade float64) error {
	return core.Validate.Var(grade, gradeTag)
}

// Custom Validators

// gradeValidation only allows grades within [MinGrade, MaxGrade], bounds included.
func gradeValidation(fl validator.FieldLevel) bool {
	grade := fl.Field().Float()
	return grade >= MinGrade && grade <= MaxGrade
}
