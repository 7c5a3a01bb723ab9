package communicating

import (
	"context"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type Communicator interface {
	// ListByCustomer retorna os resumos mais recentes do cliente primeiro
	ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Communication, error)

	// UpdateSummary substitui o resumo e, se informadas, as tags de uma comunicação.
	// Retorna false em qualquer falha; o erro é apenas logado.
	UpdateSummary(ctx context.Context, commID int64, summary string, tagsCSV *string) bool
}

type Service struct {
	communicationRepository repository.CommunicationRepository
}

func NewService(communicationRepo repository.CommunicationRepository) Communicator {
	return &Service{communicationRepository: communicationRepo}
}

func (s *Service) ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Communication, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	communications, err := s.communicationRepository.ListByCustomer(ctx, customerCode, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_code", customerCode).
			Error("communications: falha ao listar comunicações")
		return nil, err
	}

	return communications, nil
}

func (s *Service) UpdateSummary(ctx context.Context, commID int64, summary string, tagsCSV *string) bool {
	update := domain.CommunicationUpdate{Summary: &summary}
	if tagsCSV != nil {
		update.Tags = ParseTags(*tagsCSV)
	}

	logger := log.ForContext(ctx).WithField("communication_id", commID)

	if err := s.communicationRepository.Update(ctx, commID, update); err != nil {
		logger.WithError(err).Error("update-summary: falha ao atualizar comunicação")
		return false
	}

	logger.WithField("tags", len(update.Tags)).Info("update-summary: comunicação atualizada")
	return true
}

// ParseTags separa a lista por vírgulas, remove espaços e descarta segmentos
// vazios. Nunca retorna nil, então uma lista vazia limpa as tags.
func ParseTags(csv string) []string {
	tags := make([]string, 0)
	for _, segment := range strings.Split(csv, ",") {
		tag := strings.TrimSpace(segment)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
