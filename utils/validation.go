package utils

// IsValidPhone reports whether phone looks like an international phone
// number: digits with an optional leading + and optional spaces.
func IsValidPhone(phone string) bool {
	if phone == "" {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ':
		default:
			return false
		}
	}

	return digits > 0
}
