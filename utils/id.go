package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const bookingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBookingCode returns a short customer-facing code such as BK-7X9.
func GenerateBookingCode() (string, error) {
	id, err := gonanoid.Generate(bookingCodeAlphabet, 3)
	if err != nil {
		return "", err
	}
	return "BK-" + id, nil
}
