package domain

import "errors"

var (
	ErrCustomerNotFound      = errors.New("cliente não encontrado")
	ErrCommunicationNotFound = errors.New("comunicação não encontrada")
	ErrInvalidPeriod         = errors.New("período inválido")
	ErrInvalidMonth          = errors.New("mês inválido, use o formato YYYY-MM")
	ErrRegionNotFound        = errors.New("região não encontrada no mês informado")
)
