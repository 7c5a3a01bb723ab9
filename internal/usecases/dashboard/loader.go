package dashboard

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

const (
	drawerRecentOrders   = 10
	drawerTrendMonths    = 12
	drawerCommunications = 5
)

// SalesOverviewRequest carrega os dois gráficos da tela inicial
type SalesOverviewRequest struct {
	Period  domain.Period
	Filters domain.TrendFilters
}

type SalesOverview struct {
	MonthlySales []domain.RegionMonthAggregate `json:"monthly_sales"`
	Quadrant     []domain.CustomerTrendPoint   `json:"quadrant"`
}

// CustomerDrawer é tudo o que a gaveta de um cliente exibe
type CustomerDrawer struct {
	Customer       *domain.Customer        `json:"customer"`
	RecentOrders   []*domain.Order         `json:"recent_orders"`
	OrderTrend     []domain.MonthlyAmount  `json:"order_trend"`
	Communications []*domain.Communication `json:"communications"`
}

type Loader interface {
	LoadSalesOverview(ctx context.Context, request SalesOverviewRequest) (*SalesOverview, error)
	LoadCustomerDrawer(ctx context.Context, customerCode string) (*CustomerDrawer, error)
}

type Service struct {
	reporter     reporting.Reporter
	customers    customer.Customerer
	communicator communicating.Communicator
}

func NewService(
	reporter reporting.Reporter,
	customers customer.Customerer,
	communicator communicating.Communicator,
) Loader {
	return &Service{
		reporter:     reporter,
		customers:    customers,
		communicator: communicator,
	}
}

// LoadSalesOverview busca o pivot mensal e o quadrante em paralelo.
// Se qualquer busca falhar, a tela inteira falha.
func (s *Service) LoadSalesOverview(ctx context.Context, request SalesOverviewRequest) (*SalesOverview, error) {
	if err := request.Period.Validate(); err != nil {
		return nil, err
	}

	overview := &SalesOverview{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		monthlySales, err := s.reporter.GetMonthlySalesByRegion(groupCtx, request.Period)
		if err != nil {
			return errors.Wrap(err, "vendas mensais por região")
		}
		overview.MonthlySales = monthlySales
		return nil
	})

	group.Go(func() error {
		quadrant, err := s.reporter.GetCustomerQuadrant(groupCtx, request.Filters)
		if err != nil {
			return errors.Wrap(err, "quadrante de clientes")
		}
		overview.Quadrant = quadrant
		return nil
	})

	if err := group.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("sales-overview: falha ao carregar")
		return nil, err
	}

	return overview, nil
}

// LoadCustomerDrawer busca cadastro, pedidos, série mensal e comunicações
// do cliente em paralelo. Cliente inexistente retorna ErrCustomerNotFound.
func (s *Service) LoadCustomerDrawer(ctx context.Context, customerCode string) (*CustomerDrawer, error) {
	drawer := &CustomerDrawer{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		found, err := s.customers.GetByCode(groupCtx, customerCode)
		if err != nil {
			return errors.Wrap(err, "cadastro do cliente")
		}
		drawer.Customer = found
		return nil
	})

	group.Go(func() error {
		orders, err := s.customers.RecentOrders(groupCtx, customerCode, drawerRecentOrders)
		if err != nil {
			return errors.Wrap(err, "pedidos recentes")
		}
		drawer.RecentOrders = orders
		return nil
	})

	group.Go(func() error {
		trend, err := s.customers.OrderTrend(groupCtx, customerCode, drawerTrendMonths)
		if err != nil {
			return errors.Wrap(err, "série de pedidos")
		}
		drawer.OrderTrend = trend
		return nil
	})

	group.Go(func() error {
		communications, err := s.communicator.ListByCustomer(groupCtx, customerCode, drawerCommunications)
		if err != nil {
			return errors.Wrap(err, "comunicações")
		}
		drawer.Communications = communications
		return nil
	})

	if err := group.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_code", customerCode).
			Error("customer-drawer: falha ao carregar")
		return nil, err
	}

	return drawer, nil
}
