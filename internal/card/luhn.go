package card

// CheckDigit computes the Luhn check digit for the 15-digit concatenation of
// the issuer IIN and the zero-padded account id.
func CheckDigit(iin string, accountID string) int {
	payload := iin + accountID

	sum := 0
	for i, ch := range payload {
		digit := int(ch - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	remainder := sum % 10
	if remainder == 0 {
		return 0
	}
	return 10 - remainder
}

// VerifyNumber reports whether a 16-digit card number carries the correct Luhn
// check digit. Anything that is not exactly 16 decimal digits fails.
func VerifyNumber(number string) bool {
	if len(number) != NumberLength || !digitsOnly(number) {
		return false
	}

	expected := CheckDigit(number[:IINLength], number[IINLength:NumberLength-1])
	return int(number[NumberLength-1]-'0') == expected
}
