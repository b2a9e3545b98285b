package utils

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

const brazilRegion = "BR"

// FormatTelefone parses a Brazilian phone number in any common notation and
// returns it as "(DD) NNNNN-NNNN", or "(DD) NNNN-NNNN" for landlines
func FormatTelefone(telefone string) (string, error) {
	num, err := phonenumbers.Parse(telefone, brazilRegion)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if num.GetCountryCode() != 55 || !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", telefone)
	}

	national := phonenumbers.GetNationalSignificantNumber(num)
	ddd, local := national[:2], national[2:]
	split := len(local) - 4
	return fmt.Sprintf("(%s) %s-%s", ddd, local[:split], local[split:]), nil
}

// IsValidTelefone reports whether telefone is a valid Brazilian phone number
func IsValidTelefone(telefone string) bool {
	_, err := FormatTelefone(telefone)
	return err == nil
}
