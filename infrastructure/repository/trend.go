package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	trendSlopesView  = "customer_trend_slopes ts"
	refreshTimeout   = "5min"
	refreshStatement = "REFRESH MATERIALIZED VIEW CONCURRENTLY customer_trend_slopes"
)

type TrendRepository interface {
	ListTrendRows(ctx context.Context, filters domain.TrendFilters) ([]domain.TrendRow, error)
	RefreshSlopes(ctx context.Context) error
}

type trendRepository struct {
	conn *postgres.Connection
}

func NewTrendRepository(conn *postgres.Connection) TrendRepository {
	return &trendRepository{
		conn: conn,
	}
}

func trendRowsQuery(filters domain.TrendFilters) squirrel.SelectBuilder {
	builder := squirrel.
		Select(
			"ts.customer_id",
			"ts.customer_code",
			"COALESCE(ts.company_name, '')",
			"COALESCE(ts.country, '')",
			"COALESCE(ts.region_name, '')",
			"COALESCE(ts.sales_owner, '')",
			"ts.short_trend_slope",
			"ts.long_trend_slope",
			"ts.trailing_year_amount",
			"COALESCE(ts.total_amount, 0)",
		).
		From(trendSlopesView).
		OrderBy("ts.customer_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.RegionName != "" {
		builder = builder.Where(squirrel.Eq{"ts.region_name": filters.RegionName})
	}

	if filters.SalesOwner != "" {
		builder = builder.Where(squirrel.Eq{"ts.sales_owner": filters.SalesOwner})
	}

	return builder
}

func (r *trendRepository) ListTrendRows(ctx context.Context, filters domain.TrendFilters) ([]domain.TrendRow, error) {
	query, args, err := trendRowsQuery(filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	trendRows := make([]domain.TrendRow, 0)
	for rows.Next() {
		var row domain.TrendRow
		var shortSlope, longSlope sql.NullFloat64
		var trailingAmount decimal.NullDecimal

		err := rows.Scan(
			&row.CustomerID,
			&row.CustomerCode,
			&row.CompanyName,
			&row.Country,
			&row.RegionName,
			&row.SalesOwner,
			&shortSlope,
			&longSlope,
			&trailingAmount,
			&row.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de tendência: %w", err)
		}

		if shortSlope.Valid {
			row.ShortTrendSlope = &shortSlope.Float64
		}
		if longSlope.Valid {
			row.LongTrendSlope = &longSlope.Float64
		}
		if trailingAmount.Valid {
			row.TrailingYearAmount = &trailingAmount.Decimal
		}

		trendRows = append(trendRows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return trendRows, nil
}

// RefreshSlopes recalcula a view materializada das inclinações de tendência
func (r *trendRepository) RefreshSlopes(ctx context.Context) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%s'", refreshTimeout)); err != nil {
			return fmt.Errorf("erro ao definir timeout do refresh: %w", err)
		}

		if _, err := tx.ExecContext(ctx, refreshStatement); err != nil {
			return fmt.Errorf("erro ao atualizar view de tendências: %w", err)
		}

		return nil
	})
}
