package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	ListOrderRecords(ctx context.Context, period domain.Period) ([]domain.OrderRecord, error)
	ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Order, error)
	MonthlyTotalsByCustomer(ctx context.Context, customerCode string, period domain.Period) ([]domain.MonthlyAmount, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// orderRecordsQuery monta a consulta dos pedidos do período já truncados por mês,
// com a região do cliente (nula quando o cliente não tem região)
func orderRecordsQuery(period domain.Period) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"date_trunc('month', o.order_date)::date AS month",
			"r.name AS region_name",
			"c.code",
			"c.company_name",
			"o.amount",
		).
		From(ordersTable).
		Join("customers c ON c.id = o.customer_id").
		LeftJoin("regions r ON r.id = c.region_id").
		Where(squirrel.GtOrEq{"o.order_date": period.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.order_date": period.EndDate.Format(time.DateOnly)}).
		OrderBy("o.order_date ASC", "o.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *orderRepository) ListOrderRecords(ctx context.Context, period domain.Period) ([]domain.OrderRecord, error) {
	query, args, err := orderRecordsQuery(period).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.OrderRecord, 0)
	for rows.Next() {
		var record domain.OrderRecord
		var regionName sql.NullString

		err := rows.Scan(
			&record.Month,
			&regionName,
			&record.CustomerCode,
			&record.CompanyName,
			&record.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}

		record.RegionName = regionName.String
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func customerOrdersQuery(customerCode string, limit int) squirrel.SelectBuilder {
	return squirrel.
		Select("o.id", "o.order_number", "c.code", "o.order_date", "o.amount", "o.status").
		From(ordersTable).
		Join("customers c ON c.id = o.customer_id").
		Where(squirrel.Eq{"c.code": customerCode}).
		OrderBy("o.order_date DESC", "o.id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerCode string, limit int) ([]*domain.Order, error) {
	query, args, err := customerOrdersQuery(customerCode, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerCode,
			&order.OrderDate,
			&order.Amount,
			&order.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func monthlyTotalsQuery(customerCode string, period domain.Period) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"to_char(date_trunc('month', o.order_date), 'YYYY-MM') AS month",
			"SUM(o.amount) AS amount",
		).
		From(ordersTable).
		Join("customers c ON c.id = o.customer_id").
		Where(squirrel.Eq{"c.code": customerCode}).
		Where(squirrel.GtOrEq{"o.order_date": period.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.order_date": period.EndDate.Format(time.DateOnly)}).
		GroupBy("1").
		OrderBy("1 ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *orderRepository) MonthlyTotalsByCustomer(ctx context.Context, customerCode string, period domain.Period) ([]domain.MonthlyAmount, error) {
	query, args, err := monthlyTotalsQuery(customerCode, period).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.MonthlyAmount, 0)
	for rows.Next() {
		var total domain.MonthlyAmount
		if err := rows.Scan(&total.Month, &total.Amount); err != nil {
			return nil, fmt.Errorf("erro ao escanear total mensal: %w", err)
		}
		totals = append(totals, total)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}
