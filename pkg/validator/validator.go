package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s обязателен", field)
	case "email":
		return fmt.Sprintf("%s должен быть корректным email", field)
	case "oneof":
		return fmt.Sprintf("%s должен быть одним из: %s", field, fe.Param())
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s: минимум %s символов", field, fe.Param())
		}
		return fmt.Sprintf("%s: минимум %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s должен быть больше %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s некорректен", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Login":    "Логин",
		"Password": "Пароль",
		"Email":    "Email",
		"Role":     "Роль",
		"Title":    "Заголовок",
		"Message":  "Сообщение",
		"UserID":   "userId",
		"Amount":   "Сумма",
		"Method":   "Способ оплаты",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
