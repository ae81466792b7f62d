package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/database"
	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardWindow is how far back the dashboard looks.
const dashboardWindow = 30 * 24 * time.Hour

type FinanceService interface {
	ListTransactions(ctx context.Context, req *request.TransactionListRequest) (*response.PaginatedResponse[response.TransactionResponse], error)

	CreateExpense(ctx context.Context, req *request.ExpenseRequest) (*response.ExpenseResponse, error)
	UpdateExpense(ctx context.Context, expenseID string, req *request.ExpenseRequest) (*response.ExpenseResponse, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	ListExpenses(ctx context.Context, req *request.PaginatedRequest) ([]response.ExpenseResponse, error)
	TripExpenses(ctx context.Context, tripID string) ([]response.ExpenseResponse, error)

	// PreviewClosing totals a UTC day without storing anything.
	PreviewClosing(ctx context.Context, date string) (*response.ClosingPreviewResponse, error)
	CloseCash(ctx context.Context, req *request.CloseCashRequest) (*response.ClosingResponse, error)
	ListClosings(ctx context.Context, req *request.PaginatedRequest) ([]response.ClosingResponse, error)

	ListCommissions(ctx context.Context, req *request.CommissionListRequest) (*response.CommissionSummaryResponse, error)
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	TripReport(ctx context.Context, tripID string) ([]response.TripReportResponse, error)
}

type financeService struct {
	repo      *repository.Repository
	publisher broker.Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewFinanceService(repo *repository.Repository, publisher broker.Publisher, clk clock.Clock, log *zap.Logger) FinanceService {
	return &financeService{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
		log:       log.With(zap.String("service", "finance")),
	}
}

func (s *financeService) ListTransactions(ctx context.Context, req *request.TransactionListRequest) (*response.PaginatedResponse[response.TransactionResponse], error) {
	normalizePage(&req.PaginatedRequest)
	if err := validate(req); err != nil {
		return nil, err
	}

	var filter repository.TransactionFilter
	if req.Kind != "" {
		kind := entity.TransactionKind(req.Kind)
		filter.Kind = &kind
	}
	var err error
	if filter.From, filter.To, err = dateRange(req.From, req.To); err != nil {
		return nil, err
	}

	txns, err := s.repo.Transaction.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Transaction.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := lo.Map(txns, func(t *entity.FinancialTransaction, _ int) response.TransactionResponse {
		return response.TransactionToResponse(t)
	})
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// dateRange parses optional inclusive day bounds into [from, to+1day).
func dateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	from, err := parseOptionalDate("from", fromRaw)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseOptionalDate("to", toRaw)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}

func (s *financeService) CreateExpense(ctx context.Context, req *request.ExpenseRequest) (*response.ExpenseResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, err
	}
	operatorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	now := s.clock.Now()
	expense := &entity.TripExpense{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TripID:      tripID,
		Description: req.Description,
		Amount:      req.Amount.Round(2),
		Category:    entity.ExpenseCategory(req.Category),
		CreatedBy:   &operatorID,
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		trip, err := s.repo.Trip.FindByID(ctx, tripID)
		if err != nil {
			return err
		}
		if trip == nil {
			return ErrTripNotFound
		}
		if err := s.repo.Expense.Create(ctx, expense); err != nil {
			return err
		}
		return s.repo.Transaction.Create(ctx, &entity.FinancialTransaction{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Kind:          entity.TransactionKindExpense,
			Amount:        expense.Amount,
			PaymentMethod: entity.PaymentMethodCash,
			ReferenceID:   &expense.ID,
			TripID:        &expense.TripID,
			Description:   &expense.Description,
			CreatedBy:     &operatorID,
		})
	})
	if err != nil {
		s.log.Warn("Create expense failed", zap.String("trip_id", req.TripID), zap.Error(err))
		return nil, err
	}

	s.log.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("trip_id", expense.TripID.String()),
		zap.String("amount", expense.Amount.StringFixed(2)))
	resp := response.ExpenseToResponse(expense)
	return &resp, nil
}

// UpdateExpense edits the expense row only. The ledger entry written at
// creation is left as it was.
func (s *financeService) UpdateExpense(ctx context.Context, expenseID string, req *request.ExpenseRequest) (*response.ExpenseResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("expense_id", expenseID)
	if err != nil {
		return nil, err
	}
	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, err
	}

	expense, err := s.repo.Expense.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	expense.TripID = tripID
	expense.Description = req.Description
	expense.Amount = req.Amount.Round(2)
	expense.Category = entity.ExpenseCategory(req.Category)

	if err := s.repo.Expense.Update(ctx, expense); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		if errors.Is(err, database.ErrForeignKey) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	s.log.Info("Expense updated", zap.String("expense_id", expenseID))
	resp := response.ExpenseToResponse(expense)
	return &resp, nil
}

func (s *financeService) DeleteExpense(ctx context.Context, expenseID string) error {
	id, err := parseID("expense_id", expenseID)
	if err != nil {
		return err
	}
	if err := s.repo.Expense.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	s.log.Info("Expense deleted", zap.String("expense_id", expenseID))
	return nil
}

func (s *financeService) ListExpenses(ctx context.Context, req *request.PaginatedRequest) ([]response.ExpenseResponse, error) {
	normalizePage(req)
	expenses, err := s.repo.Expense.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	return lo.Map(expenses, func(e *entity.TripExpense, _ int) response.ExpenseResponse {
		return response.ExpenseToResponse(e)
	}), nil
}

func (s *financeService) TripExpenses(ctx context.Context, tripID string) ([]response.ExpenseResponse, error) {
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expense.FindByTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	return lo.Map(expenses, func(e *entity.TripExpense, _ int) response.ExpenseResponse {
		return response.ExpenseToResponse(e)
	}), nil
}

type dayTotals struct {
	sales    decimal.Decimal
	expenses decimal.Decimal
	count    int
}

func (t dayTotals) balance() decimal.Decimal {
	return t.sales.Sub(t.expenses)
}

// totalDay sums the ledger of one UTC day. Ticket and freight entries are
// sales; expense entries are costs.
func (s *financeService) totalDay(ctx context.Context, day time.Time) (dayTotals, error) {
	txns, err := s.repo.Report.TransactionsBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return dayTotals{}, err
	}
	return lo.Reduce(txns, func(acc dayTotals, t *entity.FinancialTransaction, _ int) dayTotals {
		if t.Kind == entity.TransactionKindExpense {
			acc.expenses = acc.expenses.Add(t.Amount)
		} else {
			acc.sales = acc.sales.Add(t.Amount)
		}
		acc.count++
		return acc
	}, dayTotals{sales: decimal.Zero, expenses: decimal.Zero}), nil
}

func (s *financeService) PreviewClosing(ctx context.Context, date string) (*response.ClosingPreviewResponse, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	totals, err := s.totalDay(ctx, day)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.Closing.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	return &response.ClosingPreviewResponse{
		Date:             day.Format(dateLayout),
		TotalSales:       totals.sales,
		TotalExpenses:    totals.expenses,
		Balance:          totals.balance(),
		TransactionCount: totals.count,
		Closed:           existing != nil,
	}, nil
}

func (s *financeService) CloseCash(ctx context.Context, req *request.CloseCashRequest) (*response.ClosingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	day, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	operatorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	var closing *entity.CashClosing
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Closing.FindByDate(ctx, day)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrClosingExists
		}

		totals, err := s.totalDay(ctx, day)
		if err != nil {
			return err
		}
		closing = &entity.CashClosing{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
			ClosingDate:   day,
			OperatorID:    operatorID,
			TotalSales:    totals.sales,
			TotalExpenses: totals.expenses,
			Balance:       totals.balance(),
			Notes:         req.Notes,
		}
		return translateStoreErr(s.repo.Closing.Create(ctx, closing), ErrClosingExists)
	})
	if err != nil {
		s.log.Warn("Cash closing failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	publish(ctx, s.publisher, s.log, broker.EventCashClosed, CashClosedEvent{
		ClosingID: closing.ID.String(),
		Date:      req.Date,
		Balance:   closing.Balance,
	})
	s.log.Info("Cash closed",
		zap.String("date", req.Date),
		zap.String("operator_id", operatorID.String()),
		zap.String("balance", closing.Balance.StringFixed(2)))

	resp := response.ClosingToResponse(closing)
	return &resp, nil
}

func (s *financeService) ListClosings(ctx context.Context, req *request.PaginatedRequest) ([]response.ClosingResponse, error) {
	normalizePage(req)
	closings, err := s.repo.Closing.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	return lo.Map(closings, func(c *entity.CashClosing, _ int) response.ClosingResponse {
		return response.ClosingToResponse(c)
	}), nil
}

func (s *financeService) ListCommissions(ctx context.Context, req *request.CommissionListRequest) (*response.CommissionSummaryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var filter repository.CommissionFilter
	var err error
	if filter.SellerID, err = parseOptionalID("seller_id", &req.SellerID); err != nil {
		return nil, err
	}
	if filter.From, filter.To, err = dateRange(req.From, req.To); err != nil {
		return nil, err
	}
	// sellers only see their own commissions
	if role, ok := utils.GetRoleFromContext(ctx); ok && entity.UserRole(role) == entity.RoleSeller {
		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			filter.SellerID = &userID
		}
	}

	commissions, err := s.repo.Commission.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &response.CommissionSummaryResponse{
		Items: lo.Map(commissions, func(c *entity.Commission, _ int) response.CommissionResponse {
			return response.CommissionToResponse(c)
		}),
		Total: lo.Reduce(commissions, func(sum decimal.Decimal, c *entity.Commission, _ int) decimal.Decimal {
			return sum.Add(c.Amount)
		}, decimal.Zero),
	}, nil
}

func (s *financeService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	now := s.clock.Now()
	since := entity.DateOf(now.Add(-dashboardWindow))
	until := entity.DateOf(now).AddDate(0, 0, 1)

	var (
		txns           []*entity.FinancialTransaction
		ticketStatuses []entity.TicketStatus
		tripStatuses   []entity.TripStatus
		parcels        int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.repo.Report.TransactionsBetween(gctx, since, until)
		return err
	})
	g.Go(func() error {
		var err error
		ticketStatuses, err = s.repo.Report.TicketStatusesSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		tripStatuses, err = s.repo.Report.TripStatuses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		parcels, err = s.repo.Report.CountParcelsSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to build dashboard", zap.Error(err))
		return nil, err
	}

	sales := lo.Filter(txns, func(t *entity.FinancialTransaction, _ int) bool {
		return t.Kind != entity.TransactionKindExpense
	})
	sum := func(ts []*entity.FinancialTransaction) decimal.Decimal {
		return lo.Reduce(ts, func(acc decimal.Decimal, t *entity.FinancialTransaction, _ int) decimal.Decimal {
			return acc.Add(t.Amount)
		}, decimal.Zero)
	}

	byDay := lo.GroupBy(sales, func(t *entity.FinancialTransaction) string {
		return t.CreatedAt.UTC().Format(dateLayout)
	})
	revenueByDay := lo.MapToSlice(byDay, func(day string, ts []*entity.FinancialTransaction) response.DailyRevenue {
		return response.DailyRevenue{Date: day, Amount: sum(ts)}
	})
	sort.Slice(revenueByDay, func(i, j int) bool { return revenueByDay[i].Date < revenueByDay[j].Date })

	byMethod := lo.GroupBy(sales, func(t *entity.FinancialTransaction) entity.PaymentMethod {
		return t.PaymentMethod
	})
	revenueByMethod := lo.MapToSlice(byMethod, func(m entity.PaymentMethod, ts []*entity.FinancialTransaction) response.MethodRevenue {
		return response.MethodRevenue{Method: m, Amount: sum(ts)}
	})
	sort.Slice(revenueByMethod, func(i, j int) bool { return revenueByMethod[i].Method < revenueByMethod[j].Method })

	byStatus := lo.GroupBy(tripStatuses, func(st entity.TripStatus) entity.TripStatus { return st })
	tripsByStatus := lo.MapToSlice(byStatus, func(st entity.TripStatus, sts []entity.TripStatus) response.StatusCount {
		return response.StatusCount{Status: st, Count: len(sts)}
	})
	sort.Slice(tripsByStatus, func(i, j int) bool { return tripsByStatus[i].Status < tripsByStatus[j].Status })

	return &response.DashboardResponse{
		Revenue: sum(sales),
		ActiveTickets: lo.CountBy(ticketStatuses, func(st entity.TicketStatus) bool {
			return st == entity.TicketStatusConfirmed || st == entity.TicketStatusUsed
		}),
		ActiveTrips: lo.CountBy(tripStatuses, func(st entity.TripStatus) bool {
			return !st.Terminal()
		}),
		Parcels:         parcels,
		RevenueByDay:    revenueByDay,
		RevenueByMethod: revenueByMethod,
		TripsByStatus:   tripsByStatus,
	}, nil
}

func (s *financeService) TripReport(ctx context.Context, tripID string) ([]response.TripReportResponse, error) {
	var id *uuid.UUID
	if tripID != "" {
		parsed, err := parseID("trip_id", tripID)
		if err != nil {
			return nil, err
		}
		id = &parsed
	}

	rows, err := s.repo.Report.TripReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if id != nil && len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	return lo.Map(rows, func(r *entity.TripReportRow, _ int) response.TripReportResponse {
		return response.TripReportToResponse(r)
	}), nil
}
