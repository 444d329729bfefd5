package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
}

// ValidateStruct runs the schema and returns every field message, not
// just the first one.
func ValidateStruct(s interface{}) []string {
	if Validate == nil {
		InitValidator()
	}

	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.StructField()
	if strings.HasPrefix(field, "Tags[") {
		return "Tags cannot exceed 50 characters each"
	}

	switch field {
	case "Username":
		switch fe.Tag() {
		case "required":
			return "Username is required"
		case "min":
			return "Username must be at least 3 characters"
		case "max":
			return "Username cannot exceed 30 characters"
		case "alphanum":
			return "Username can only contain alphanumeric characters"
		}
	case "Email":
		switch fe.Tag() {
		case "required":
			return "Email is required"
		case "email":
			return "Please provide a valid email"
		}
	case "Title":
		switch fe.Tag() {
		case "required":
			return "Title is required"
		case "max":
			return "Title cannot exceed 200 characters"
		}
	case "Content":
		switch fe.Tag() {
		case "required":
			return "Content is required"
		case "max":
			return "Content cannot exceed 50000 characters"
		}
	case "Language":
		if fe.Tag() == "max" {
			return "Language cannot exceed 50 characters"
		}
	case "Tags":
		if fe.Tag() == "max" {
			return "Maximum 10 tags allowed"
		}
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}
