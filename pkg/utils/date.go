package utils

import (
	"time"

	"github.com/pkg/errors"
)

// ParseDate interpreta uma data obrigatória no formato YYYY-MM-DD
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, errors.New("data obrigatória não informada")
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "data inválida: %q", dateStr)
	}

	return date, nil
}

// ParseOptionalDate interpreta uma data opcional; vazio retorna nil sem erro
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, errors.Wrapf(err, "data inválida: %q", dateStr)
	}

	return &date, nil
}
