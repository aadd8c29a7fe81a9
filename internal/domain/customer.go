package domain

import (
	"regexp"
	"time"
)

// Customer — покупатель back office.
type Customer struct {
	ID   int64
	Name string
	// CPF — бразильский налоговый идентификатор в формате XXX.XXX.XXX-XX,
	// уникален в пределах системы.
	CPF       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// ValidateCPF проверяет формат CPF.
func ValidateCPF(cpf string) error {
	if !cpfPattern.MatchString(cpf) {
		return ErrCPFInvalid
	}
	return nil
}
