// Package cnpj validates and formats Brazilian company registration numbers.
//
// A CNPJ has 14 digits: a 12-digit base followed by two check digits, each
// computed with a weighted modulo-11 sum over the digits before it.
package cnpj

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of digits of a canonical CNPJ.
const Length = 14

const baseLength = Length - 2

var (
	// ErrMissing indicates the input carries no digits at all.
	ErrMissing = errors.New("cnpj: missing")
	// ErrLength indicates the input does not have exactly 14 digits.
	ErrLength = errors.New("cnpj: must contain 14 digits")
	// ErrChecksum indicates a well-formed number whose check digits do not match.
	ErrChecksum = errors.New("cnpj: invalid check digits")
)

// Clean strips every non-digit character from input.
func Clean(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsValid reports whether input is a structurally valid CNPJ.
func IsValid(input string) bool {
	return Validate(input) == nil
}

// Validate checks input and reports the first rule it breaks.
func Validate(input string) error {
	digits := Clean(input)
	if digits == "" {
		return ErrMissing
	}
	if len(digits) != Length {
		return ErrLength
	}
	if repeated(digits) {
		return ErrChecksum
	}
	if checkDigit(digits[:baseLength]) != digits[baseLength] {
		return ErrChecksum
	}
	if checkDigit(digits[:baseLength+1]) != digits[baseLength+1] {
		return ErrChecksum
	}
	return nil
}

// CheckDigits returns the two check digits for a 12-digit base.
func CheckDigits(base string) (string, error) {
	digits := Clean(base)
	if len(digits) != baseLength {
		return "", fmt.Errorf("cnpj: base must contain %d digits, got %d", baseLength, len(digits))
	}
	first := checkDigit(digits)
	second := checkDigit(digits + string(first))
	return string([]byte{first, second}), nil
}

// Complete appends the check digits to a 12-digit base.
func Complete(base string) (string, error) {
	dv, err := CheckDigits(base)
	if err != nil {
		return "", err
	}
	return Clean(base) + dv, nil
}

// Format renders a 14-digit number as XX.XXX.XXX/XXXX-XX. Anything else is
// returned as its digits.
func Format(input string) string {
	d := Clean(input)
	if len(d) != Length {
		return d
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// checkDigit computes one check digit over digits. Weights run from 2 at the
// rightmost digit up to 9 and then start again at 2.
func checkDigit(digits string) byte {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + 11 - rem)
}

func repeated(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
