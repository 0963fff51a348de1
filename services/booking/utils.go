package booking

import (
	"regexp"
	"strings"
	"time"

	"rapstation/models"
)

const (
	nameMinLength  = 2
	nameMaxLength  = 50
	phoneMinDigits = 9
	phoneMaxDigits = 15
	dateLayout     = "2006-01-02"
)

var (
	namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// PaymentMethods are the choices offered on the checkout page.
var PaymentMethods = []string{"qris", "gopay", "ovo", "dana", "bca", "mandiri"}

// PlaceholderInput is the booking form.
type PlaceholderInput struct {
	Type  string `json:"type"`
	Date  string `json:"date"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// validatedPlaceholder holds normalised form values.
type validatedPlaceholder struct {
	Resource models.Resource
	Date     string
	Name     string
	Phone    string
}

func validatePlaceholder(in PlaceholderInput, today time.Time) (validatedPlaceholder, error) {
	fields := map[string]string{}
	var out validatedPlaceholder

	if strings.TrimSpace(in.Type) == "" {
		fields["type"] = "choose a rental type first"
	} else if r, ok := models.ResolveResource(strings.TrimSpace(in.Type)); !ok {
		fields["type"] = "unknown rental type"
	} else {
		out.Resource = r
	}

	if d := strings.TrimSpace(in.Date); d == "" {
		fields["date"] = "choose a booking date"
	} else if day, err := time.ParseInLocation(dateLayout, d, today.Location()); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	} else if day.Before(today) {
		fields["date"] = "date cannot be in the past"
	} else {
		out.Date = d
	}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		fields["name"] = "enter your name"
	case len(name) < nameMinLength:
		fields["name"] = "name must be at least 2 characters"
	case len(in.Name) > nameMaxLength:
		fields["name"] = "name must be at most 50 characters"
	case !namePattern.MatchString(name):
		fields["name"] = "name may only contain letters and spaces"
	default:
		out.Name = name
	}

	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "enter a WhatsApp number"
	} else {
		digits := nonDigits.ReplaceAllString(in.Phone, "")
		switch {
		case len(digits) < phoneMinDigits:
			fields["phone"] = "number is too short (min 9 digits)"
		case len(digits) > phoneMaxDigits:
			fields["phone"] = "number is too long (max 15 digits)"
		case sameDigit(digits):
			fields["phone"] = "number cannot repeat a single digit"
		default:
			out.Phone = digits
		}
	}

	if len(fields) > 0 {
		return validatedPlaceholder{}, &ValidationError{Fields: fields}
	}
	return out, nil
}

func sameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// ValidPaymentMethod reports whether m is one of PaymentMethods.
func ValidPaymentMethod(m string) bool {
	for _, p := range PaymentMethods {
		if m == p {
			return true
		}
	}
	return false
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
