package reportService

import (
	"FinTrack/internal/api/report"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/api/workplace"
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	websocketPkg "FinTrack/pkg/websocket"
	"bytes"
	"errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"sync"
	"testing"
	"time"
)

var now = time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

type fakeTransactions struct {
	mu        sync.Mutex
	rows      []entity.Transaction
	failMonth int
	calls     int
}

func (f *fakeTransactions) CreateTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.TransactionResponse, error) {
	return transaction.TransactionResponse{}, errors.New("not used")
}

func (f *fakeTransactions) DeleteTransaction(ctx context.Context, ownerID string, id string) error {
	return errors.New("not used")
}

func (f *fakeTransactions) ListTransactions(ctx context.Context, req transaction.ListTransactionsQuery) (transaction.TransactionListResponse, error) {
	return transaction.TransactionListResponse{}, errors.New("not used")
}

func (f *fakeTransactions) Summary(ctx context.Context, req transaction.SummaryQuery) (transaction.SummaryResponse, error) {
	return transaction.SummaryResponse{}, errors.New("not used")
}

func (f *fakeTransactions) Find(ctx context.Context, filter query.Filter) ([]entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failMonth != 0 && filter.Month == f.failMonth {
		return nil, transaction.ErrFetchTransactions
	}
	return filter.Apply(f.rows), nil
}

func (f *fakeTransactions) Watch(ctx context.Context, ownerID string, workplaceID string) (<-chan websocketPkg.Event, func(), error) {
	return nil, nil, errors.New("not used")
}

func (f *fakeTransactions) Location() *time.Location {
	return time.UTC
}

type fakeWorkplaces struct{}

func (fakeWorkplaces) CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error) {
	return workplace.WorkplaceResponse{}, errors.New("not used")
}

func (fakeWorkplaces) ListWorkplaces(ctx context.Context, ownerID string) ([]workplace.WorkplaceResponse, error) {
	return nil, errors.New("not used")
}

func (fakeWorkplaces) GetWorkplace(ctx context.Context, ownerID string, id string) (workplace.WorkplaceResponse, error) {
	if ownerID != "u1" || id != "clinic" {
		return workplace.WorkplaceResponse{}, workplace.ErrWorkplaceNotFound
	}
	return workplace.WorkplaceResponse{ID: "clinic", Name: "Clinic", IsActive: true}, nil
}

func (fakeWorkplaces) DeactivateWorkplace(ctx context.Context, ownerID string, id string) error {
	return errors.New("not used")
}

func (fakeWorkplaces) GetActive(ctx context.Context, ownerID string, id string) (entity.Workplace, error) {
	return entity.Workplace{}, errors.New("not used")
}

func tx(id string, typ entity.TransactionType, method entity.PaymentMethod, amount string, occurredAt time.Time) entity.Transaction {
	year, month := entity.DerivePeriod(occurredAt)
	return entity.Transaction{
		ID:          id,
		OwnerID:     "u1",
		WorkplaceID: "clinic",
		Type:        typ,
		Method:      method,
		Amount:      decimal.RequireFromString(amount),
		OccurredAt:  occurredAt,
		Year:        year,
		Month:       month,
	}
}

func newTestService() (*reportService, *fakeTransactions) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	transactions := &fakeTransactions{rows: []entity.Transaction{
		tx("a", entity.TransactionTypeIncome, entity.PaymentMethodCash, "100", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)),
		tx("b", entity.TransactionTypeExpense, entity.PaymentMethodOnline, "40", time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC)),
		tx("c", entity.TransactionTypeIncome, entity.PaymentMethodCash, "60", time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)),
	}}

	svc := New(logger, transactions, fakeWorkplaces{}, "en-GB").(*reportService)
	svc.now = func() time.Time { return now }
	return svc, transactions
}

func TestMonthlyReport(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Monthly(context.Background(), report.MonthlyReportQuery{
		WorkplaceID: "clinic", Year: 2024, Month: 3, OwnerID: "u1", OwnerEmail: "dr.rossi@clinic.it",
	})
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if out.Filename != "Clinic_dr.rossi_03_2024.pdf" {
		t.Errorf("Filename = %s", out.Filename)
	}
	if !bytes.HasPrefix(out.Data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestAnnualReportFetchesEveryMonth(t *testing.T) {
	svc, transactions := newTestService()

	out, err := svc.Annual(context.Background(), report.AnnualReportQuery{
		WorkplaceID: "clinic", Year: 2024, OwnerID: "u1", OwnerEmail: "dr.rossi@clinic.it",
	})
	if err != nil {
		t.Fatalf("Annual() error = %v", err)
	}
	if transactions.calls != 4 {
		t.Errorf("fetches = %d, want one per month up to April", transactions.calls)
	}
	if out.Filename != "Clinic_dr.rossi_Annual_2024.pdf" {
		t.Errorf("Filename = %s", out.Filename)
	}
	if out.Pages != 2 {
		t.Errorf("Pages = %d, want 2", out.Pages)
	}
}

func TestAnnualReportAbortsOnFetchFailure(t *testing.T) {
	svc, transactions := newTestService()
	transactions.failMonth = 2

	out, err := svc.Annual(context.Background(), report.AnnualReportQuery{
		WorkplaceID: "clinic", Year: 2024, OwnerID: "u1", OwnerEmail: "dr.rossi@clinic.it",
	})
	if !errors.Is(err, report.ErrReportFetch) {
		t.Errorf("err = %v, want ErrReportFetch", err)
	}
	if out != nil {
		t.Error("partial report returned")
	}
}

func TestAnnualReportEmptyYear(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Annual(context.Background(), report.AnnualReportQuery{
		WorkplaceID: "clinic", Year: 2023, OwnerID: "u1", OwnerEmail: "dr.rossi@clinic.it",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Pages != 1 {
		t.Errorf("Pages = %d, want 1", out.Pages)
	}
}

func TestCustomReport(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Custom(context.Background(), report.CustomReportQuery{
		WorkplaceID: "clinic", From: "2024-03-05", To: "2024-03-05", OwnerID: "u1", OwnerEmail: "dr.rossi@clinic.it",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Filename != "Clinic_dr.rossi_Custom_05-03-2024_to_05-03-2024.pdf" {
		t.Errorf("Filename = %s", out.Filename)
	}

	_, err = svc.Custom(context.Background(), report.CustomReportQuery{
		WorkplaceID: "clinic", From: "2024-03-06", To: "2024-03-05", OwnerID: "u1",
	})
	if !errors.Is(err, transaction.ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestReportForForeignWorkplace(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Monthly(context.Background(), report.MonthlyReportQuery{
		WorkplaceID: "clinic", Year: 2024, Month: 3, OwnerID: "u2",
	})
	if !errors.Is(err, workplace.ErrWorkplaceNotFound) {
		t.Errorf("err = %v, want ErrWorkplaceNotFound", err)
	}
}
