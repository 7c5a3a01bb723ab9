package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	customersTable = "customers c"
	// total de pedidos por cliente, usado na listagem e na gaveta
	customerTotalsJoin = "(SELECT customer_id, SUM(amount) AS total_amount FROM orders GROUP BY customer_id) t ON t.customer_id = c.id"
)

var customerColumns = []string{
	"c.id",
	"c.code",
	"c.company_name",
	"COALESCE(c.country, '')",
	"COALESCE(r.name, '')",
	"COALESCE(c.sales_owner, '')",
	"COALESCE(t.total_amount, 0)",
	"c.created_at",
	"c.updated_at",
}

type CustomerRepository interface {
	List(ctx context.Context, filters domain.CustomerFilters) ([]*domain.Customer, int, error)
	GetByCode(ctx context.Context, code string) (*domain.Customer, error)
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func applyCustomerFilters(builder squirrel.SelectBuilder, filters domain.CustomerFilters) squirrel.SelectBuilder {
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"c.code": pattern},
			squirrel.ILike{"c.company_name": pattern},
		})
	}

	if filters.RegionName != "" {
		builder = builder.Where(squirrel.Eq{"r.name": filters.RegionName})
	}

	if filters.SalesOwner != "" {
		builder = builder.Where(squirrel.Eq{"c.sales_owner": filters.SalesOwner})
	}

	return builder
}

func customerListQuery(filters domain.CustomerFilters) squirrel.SelectBuilder {
	builder := squirrel.
		Select(customerColumns...).
		From(customersTable).
		LeftJoin("regions r ON r.id = c.region_id").
		LeftJoin(customerTotalsJoin).
		OrderBy("c.company_name ASC", "c.id ASC").
		Limit(uint64(filters.PageSize)).
		Offset(uint64(filters.Offset())).
		PlaceholderFormat(squirrel.Dollar)

	return applyCustomerFilters(builder, filters)
}

func customerCountQuery(filters domain.CustomerFilters) squirrel.SelectBuilder {
	builder := squirrel.
		Select("COUNT(*)").
		From(customersTable).
		LeftJoin("regions r ON r.id = c.region_id").
		PlaceholderFormat(squirrel.Dollar)

	return applyCustomerFilters(builder, filters)
}

func (r *customerRepository) List(ctx context.Context, filters domain.CustomerFilters) ([]*domain.Customer, int, error) {
	countSQL, countArgs, err := customerCountQuery(filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query de contagem: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	if total == 0 {
		return []*domain.Customer{}, 0, nil
	}

	query, args, err := customerListQuery(filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0, filters.PageSize)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) GetByCode(ctx context.Context, code string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		LeftJoin("regions r ON r.id = c.region_id").
		LeftJoin(customerTotalsJoin).
		Where(squirrel.Eq{"c.code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer, err := scanCustomer(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	customer := &domain.Customer{}

	err := row.Scan(
		&customer.ID,
		&customer.Code,
		&customer.CompanyName,
		&customer.Country,
		&customer.RegionName,
		&customer.SalesOwner,
		&customer.TotalAmount,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return customer, nil
}
