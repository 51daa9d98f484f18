// Package nit calcula el dígito de verificación del NIT colombiano (módulo 11, DIAN).
package nit

import (
	"fmt"
	"unicode"
)

// pesos aplicados a los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// CheckDigit calcula el dígito de verificación a partir de los 9 primeros dígitos.
func CheckDigit(value string) (byte, error) {
	digits := digitsOf(value)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), nil
	}
	return byte('0' + (11 - r)), nil
}

// HasCheckDigit indica si value trae los 10 dígitos (base + verificación).
func HasCheckDigit(value string) bool { return len(digitsOf(value)) == 10 }

// Validate comprueba un NIT de 10 dígitos (base + verificación), con o sin puntos y guiones.
func Validate(value string) error {
	digits := digitsOf(value)
	if len(digits) != 10 {
		return fmt.Errorf("nit: se esperaban 10 dígitos con verificación, se recibieron %d", len(digits))
	}
	expected, _ := CheckDigit(string(digits))
	if digits[9] != expected {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// Format devuelve "XXXXXXXXX-D" cuando value trae exactamente los 9 dígitos base,
// o el NIT con guion cuando ya incluye el dígito. Otros valores se devuelven tal cual.
func Format(value string) string {
	digits := digitsOf(value)
	switch len(digits) {
	case 9:
		dv, _ := CheckDigit(value)
		return string(digits) + "-" + string(dv)
	case 10:
		return string(digits[:9]) + "-" + string(digits[9])
	default:
		return value
	}
}

func digitsOf(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
