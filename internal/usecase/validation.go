package usecase

import (
	"net/mail"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateBookingInput(input CreateBookingInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Address) == "" {
		errors = append(errors, ValidationError{"address", "is required"})
	}

	if strings.TrimSpace(input.Postcode) == "" {
		errors = append(errors, ValidationError{"postcode", "is required"})
	}

	if len(input.Bins) == 0 || string(input.Bins) == "null" || string(input.Bins) == "[]" {
		errors = append(errors, ValidationError{"bins", "at least one bin must be selected"})
	}

	if input.CollectionDay == "" {
		errors = append(errors, ValidationError{"collection_day", "is required"})
	} else if !isValidCollectionDay(input.CollectionDay) {
		errors = append(errors, ValidationError{"collection_day", "must be a weekday"})
	}

	if input.PaymentMethod == "" {
		errors = append(errors, ValidationError{"payment_method", "is required"})
	} else if input.PaymentMethod != "card" && input.PaymentMethod != "direct_debit" && input.PaymentMethod != "cash" {
		errors = append(errors, ValidationError{"payment_method", "must be card, direct_debit or cash"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func isValidCollectionDay(day string) bool {
	switch day {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday":
		return true
	}
	return false
}
