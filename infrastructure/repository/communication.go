package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	communicationsTable = "communications cm"
)

type CommunicationRepository interface {
	ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Communication, error)
	Update(ctx context.Context, id int64, update domain.CommunicationUpdate) error
}

type communicationRepository struct {
	conn *postgres.Connection
}

func NewCommunicationRepository(conn *postgres.Connection) CommunicationRepository {
	return &communicationRepository{
		conn: conn,
	}
}

func communicationsByCustomerQuery(customerCode string, limit int) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"cm.id",
			"c.code",
			"cm.week_start",
			"COALESCE(cm.summary, '')",
			"cm.tags",
			"cm.created_at",
			"cm.updated_at",
		).
		From(communicationsTable).
		Join("customers c ON c.id = cm.customer_id").
		Where(squirrel.Eq{"c.code": customerCode}).
		OrderBy("cm.week_start DESC", "cm.id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *communicationRepository) ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Communication, error) {
	query, args, err := communicationsByCustomerQuery(customerCode, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	communications := make([]*domain.Communication, 0)
	for rows.Next() {
		communication := &domain.Communication{}
		var tags []string

		err := rows.Scan(
			&communication.ID,
			&communication.CustomerCode,
			&communication.WeekStart,
			&communication.Summary,
			pq.Array(&tags),
			&communication.CreatedAt,
			&communication.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear comunicação: %w", err)
		}

		if tags == nil {
			tags = []string{}
		}
		communication.Tags = tags
		communications = append(communications, communication)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return communications, nil
}

// communicationUpdateQuery monta o UPDATE parcial; só as colunas informadas são alteradas
func communicationUpdateQuery(id int64, update domain.CommunicationUpdate) squirrel.UpdateBuilder {
	builder := squirrel.StatementBuilder.
		Update("communications").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if update.Summary != nil {
		builder = builder.Set("summary", *update.Summary)
	}

	if update.Tags != nil {
		builder = builder.Set("tags", pq.Array(update.Tags))
	}

	return builder
}

func (r *communicationRepository) Update(ctx context.Context, id int64, update domain.CommunicationUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	query, args, err := communicationUpdateQuery(id, update).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrCommunicationNotFound
	}

	return nil
}
