package domain

import "time"

// Communication é o resumo semanal gerado por IA para um cliente
type Communication struct {
	ID           int64     `json:"id"`
	CustomerCode string    `json:"customer_code"`
	WeekStart    time.Time `json:"week_start"`
	Summary      string    `json:"summary"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CommunicationUpdate é uma atualização parcial de um resumo.
// Tags nil mantém as tags atuais; qualquer slice não nil substitui o conjunto inteiro.
type CommunicationUpdate struct {
	Summary *string
	Tags    []string
}

// IsEmpty indica que não há nada para atualizar
func (u CommunicationUpdate) IsEmpty() bool {
	return u.Summary == nil && u.Tags == nil
}
