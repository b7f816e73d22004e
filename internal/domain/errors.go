package domain

import "github.com/pkg/errors"

// Erros de violação de contrato do chamador. São devolvidos imediatamente à
// camada de API para tradução em erro HTTP; o núcleo não faz retry.
var (
	// ErrInvalidInput indica valores negativos ou dimensões/filtros inválidos
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrInvalidRange indica data de início posterior à data de fim
	ErrInvalidRange = errors.New("a data de início não pode ser posterior à data de fim")

	// ErrTemplateNotFound indica que o template de consulta não existe
	ErrTemplateNotFound = errors.New("template de consulta não encontrado")
)
