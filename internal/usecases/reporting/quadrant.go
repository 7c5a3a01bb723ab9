package reporting

import "github.com/vfg2006/sales-dashboard-api/internal/domain"

// TransformQuadrant converte as linhas de tendência em pontos do gráfico de
// quadrantes. Linhas sem alguma das inclinações são ignoradas: tendência
// ausente não é tendência zero. A ordem da entrada é mantida.
func TransformQuadrant(rows []domain.TrendRow) []domain.CustomerTrendPoint {
	points := make([]domain.CustomerTrendPoint, 0, len(rows))

	for _, row := range rows {
		if row.ShortTrendSlope == nil || row.LongTrendSlope == nil {
			continue
		}

		name := row.CompanyName
		if name == "" {
			name = row.CustomerCode
		}

		points = append(points, domain.CustomerTrendPoint{
			ID:                 row.CustomerID,
			CustomerCode:       row.CustomerCode,
			DisplayName:        name,
			ShortTermSlope:     *row.ShortTrendSlope,
			LongTermSlope:      *row.LongTrendSlope,
			TrailingYearAmount: row.TrailingYearAmount,
			TotalAmount:        row.TotalAmount,
			Country:            row.Country,
			RegionName:         row.RegionName,
			SalesOwner:         row.SalesOwner,
		})
	}

	return points
}
