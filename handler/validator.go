package handler

import (
	"errors"
	"reflect"
	"strings"

	"postboard/domain"

	"github.com/go-playground/validator/v10"
)

// Validator plugs go-playground/validator into echo and reports fields by
// their JSON names.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return &domain.ValidationError{Field: strings.Join(fields, ","), Reason: "missing required field"}
	}
	return &domain.ValidationError{Reason: err.Error()}
}
