package validator

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// В ошибках используем имена полей из json тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// "HH:MM"
	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})

	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "customer", "barber", "admin":
			return true
		}
		return false
	})
}

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Errors список ошибок валидации структуры
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Missing возвращает отсортированный список незаполненных обязательных полей
func (e Errors) Missing() []string {
	missing := make([]string, 0)
	for _, fe := range e {
		if fe.Tag == "required" {
			missing = append(missing, fe.Field)
		}
	}
	sort.Strings(missing)
	return missing
}

// Invalid возвращает ошибки, не связанные с отсутствием поля
func (e Errors) Invalid() Errors {
	invalid := make(Errors, 0)
	for _, fe := range e {
		if fe.Tag != "required" {
			invalid = append(invalid, fe)
		}
	}
	return invalid
}

// Validate проверяет структуру и возвращает nil, если ошибок нет
func Validate(s interface{}) Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Tag: "invalid", Message: err.Error()}}
	}

	result := make(Errors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		result = append(result, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return result
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "value is too short (min: " + fe.Param() + ")"
	case "max":
		return "value is too long (max: " + fe.Param() + ")"
	case "gt":
		return "value must be greater than " + fe.Param()
	case "gte":
		return "value must be at least " + fe.Param()
	case "lte":
		return "value must be at most " + fe.Param()
	case "oneof":
		return "value must be one of: " + fe.Param()
	case "hhmm":
		return "time must be in HH:MM format"
	case "role":
		return "role must be customer, barber or admin"
	default:
		return "invalid value"
	}
}
