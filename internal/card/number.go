package card

import (
	"fmt"
)

const (
	IINLength       = 6
	AccountIDLength = 9
	NumberLength    = 16
	PINLength       = 4
)

// Parts is the decomposition of a 16-digit card number into its fixed-width
// fields. All slicing of card numbers by character offset happens in this
// package and nowhere else.
type Parts struct {
	IIN        string
	AccountID  string
	CheckDigit int
}

func Compose(iin string, accountID string) string {
	return fmt.Sprintf("%s%s%d", iin, accountID, CheckDigit(iin, accountID))
}

func Parse(number string) (Parts, error) {
	if len(number) != NumberLength {
		return Parts{}, fmt.Errorf("card number must be exactly %d digits", NumberLength)
	}
	if !digitsOnly(number) {
		return Parts{}, fmt.Errorf("card number must contain only digits")
	}

	return Parts{
		IIN:        number[:IINLength],
		AccountID:  number[IINLength : IINLength+AccountIDLength],
		CheckDigit: int(number[NumberLength-1] - '0'),
	}, nil
}

// FormatAccountID renders a numeric account id as the 9-digit zero-padded
// wire form.
func FormatAccountID(id int64) string {
	return fmt.Sprintf("%0*d", AccountIDLength, id)
}

func IsAccountID(accountID string) bool {
	return len(accountID) == AccountIDLength && digitsOnly(accountID)
}

func IsIIN(iin string) bool {
	return len(iin) == IINLength && digitsOnly(iin)
}

func IsPIN(pin string) bool {
	return len(pin) == PINLength && digitsOnly(pin)
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
