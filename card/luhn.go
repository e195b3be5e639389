package card

// LuhnValid reports whether a digits-only string passes the mod-10 checksum.
// Digits are processed right to left; every second digit is doubled and
// reduced by 9 when it exceeds 9.
func LuhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum, dbl := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

// LuhnCheckDigit returns the check digit that makes body+digit Luhn-valid.
func LuhnCheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return byte('0' + (10-(sum%10))%10)
}
