package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"owner", "groomer", "admin"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Pet type validation
	validate.RegisterValidation("pet_type", func(fl validator.FieldLevel) bool {
		petType := fl.Field().String()
		validTypes := []string{"dog", "cat", "dog_and_cat"}
		for _, t := range validTypes {
			if petType == t {
				return true
			}
		}
		return false
	})

	// Size key validation
	validate.RegisterValidation("size_key", func(fl validator.FieldLevel) bool {
		size := fl.Field().String()
		validSizes := []string{"extra_small", "small", "medium", "large", "extra_large", "cat_standard", "all"}
		for _, s := range validSizes {
			if size == s {
				return true
			}
		}
		return false
	})

	// Service kind validation
	validate.RegisterValidation("service_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		return kind == "package" || kind == "individual"
	})

	// Booking date validation (YYYY-MM-DD)
	validate.RegisterValidation("booking_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// Time slot validation (HH:MM, 24-hour)
	validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "role":
			errors[field] = "Invalid role. Must be: owner, groomer, or admin"
		case "pet_type":
			errors[field] = "Invalid pet type. Must be: dog, cat, or dog_and_cat"
		case "size_key":
			errors[field] = "Invalid size. Must be one of: extra_small, small, medium, large, extra_large, cat_standard, all"
		case "service_kind":
			errors[field] = "Invalid kind. Must be: package or individual"
		case "booking_date":
			errors[field] = "Invalid date. Expected format: YYYY-MM-DD"
		case "time_slot":
			errors[field] = "Invalid time. Expected format: HH:MM"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
