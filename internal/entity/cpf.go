package entity

import (
	"errors"
	"strings"
)

var ErrInvalidCPF = errors.New("cpf inválido")

// CleanCPF remove pontuação, mantendo apenas dígitos.
func CleanCPF(cpf string) string {
	return OnlyDigits(cpf)
}

func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF valida tamanho, sequências repetidas e os dois dígitos verificadores.
func IsValidCPF(cpf string) bool {
	cleaned := CleanCPF(cpf)
	if len(cleaned) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < len(cleaned); i++ {
		if cleaned[i] != cleaned[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	digits := make([]int, 11)
	for i := range cleaned {
		digits[i] = int(cleaned[i] - '0')
	}

	return checkDigit(digits[:9], 10) == digits[9] && checkDigit(digits[:10], 11) == digits[10]
}

func checkDigit(digits []int, weight int) int {
	sum := 0
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// FormatCPF devolve o CPF no formato 000.000.000-00; valores fora do padrão voltam como vieram.
func FormatCPF(cpf string) string {
	c := CleanCPF(cpf)
	if len(c) != 11 {
		return cpf
	}
	return c[0:3] + "." + c[3:6] + "." + c[6:9] + "-" + c[9:]
}
