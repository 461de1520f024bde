package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// NewValidator returns a validator with the dashboard's custom tags
// registered: taskstatus, projectstatus, workcategory, workdone and isodate.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return entities.TaskStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return entities.ProjectStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("workcategory", func(fl validator.FieldLevel) bool {
		switch entities.WorkCategory(fl.Field().String()) {
		case entities.WorkCategoryDesign, entities.WorkCategorySite, entities.WorkCategoryOffice, entities.WorkCategoryOther:
			return true
		default:
			return false
		}
	})
	_ = v.RegisterValidation("workdone", func(fl validator.FieldLevel) bool {
		return entities.ValidWorkDone(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := entities.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, tag := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %s", field, tag))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidationError reports whether err came from request validation
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func validate(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = fe.Tag()
	}
	return out
}
