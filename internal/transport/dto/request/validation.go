package request

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgMissing      = "Field required"
	msgInt          = "Input should be a valid integer"
	msgIntParsing   = "Input should be a valid integer, unable to parse string as an integer"
	msgIntFromFloat = "Input should be a valid integer, got a number with a fractional part"
	msgString       = "Input should be a valid string"
	msgObject       = "Input should be a valid dictionary or object to extract fields from"
	msgJSON         = "JSON decode error"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках нужны имена полей из json-тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError описывает одну проблему во входных данных
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError содержит все найденные проблемы, а не только первую
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(loc []string, msg, typ string) {
	e.Fields = append(e.Fields, FieldError{Loc: loc, Msg: msg, Type: typ})
}

func (e *ValidationError) has(field string) bool {
	for _, f := range e.Fields {
		if len(f.Loc) > 0 && f.Loc[len(f.Loc)-1] == field {
			return true
		}
	}
	return false
}

// collectStructErrors переводит ошибки validator в FieldError
func collectStructErrors(s any, verr *ValidationError, loc string) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.add([]string{loc}, err.Error(), "value_error")
		return
	}

	for _, fe := range errs {
		field := fe.Field()
		if verr.has(field) {
			continue
		}
		switch fe.Tag() {
		case "required":
			verr.add([]string{loc, field}, msgMissing, "missing")
		default:
			verr.add([]string{loc, field}, field+" is invalid", fe.Tag())
		}
	}
}
