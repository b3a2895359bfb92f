package transactionService

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/response"
	websocketPkg "FinTrack/pkg/websocket"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *transactionService) CreateTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.TransactionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now().In(s.location)

	occurredAt, err := s.parseDate(req.Date)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"date":       req.Date,
		}).Warn("Invalid transaction date")
		return transaction.TransactionResponse{}, err
	}

	if _, err := s.workplaceService.GetActive(ctx, req.OwnerID, req.WorkplaceID); err != nil {
		return transaction.TransactionResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return transaction.TransactionResponse{}, transaction.ErrCreateTransaction
	}

	tx, err := entity.NewTransaction(
		id,
		req.OwnerID,
		req.WorkplaceID,
		entity.TransactionType(req.Type),
		entity.PaymentMethod(req.Method),
		req.Amount.Round(2),
		strings.TrimSpace(req.Note),
		occurredAt,
		now,
	)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return transaction.TransactionResponse{}, err
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return transaction.TransactionResponse{}, transaction.ErrCreateTransaction
	}

	if err := repo.Transactions.CreateTransaction(ctx, tx); err != nil {
		return transaction.TransactionResponse{}, response.Wrap(transaction.ErrCreateTransaction, err.Error())
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"transaction_id": tx.ID,
		"workplace_id":   tx.WorkplaceID,
	}).Info("Transaction created")

	s.afterMutation(ctx, tx, websocketPkg.EventTransactionCreated)

	return makeTransactionResponse(tx), nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.transactionRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return transaction.ErrDeleteTransaction
	}
	defer func() {
		if err := repo.Rollback(); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Debug("Rollback after delete transaction")
		}
	}()

	tx, err := repo.Transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			return err
		}
		return response.Wrap(transaction.ErrDeleteTransaction, err.Error())
	}

	if tx.OwnerID != ownerID {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"transaction_id": id,
			"user_id":        ownerID,
		}).Warn("Attempt to delete another user's transaction")
		return transaction.ErrTransactionNotOwned
	}

	if err := repo.Transactions.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			return err
		}
		return response.Wrap(transaction.ErrDeleteTransaction, err.Error())
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit delete")
		return transaction.ErrDeleteTransaction
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"transaction_id": id,
	}).Info("Transaction deleted")

	s.afterMutation(ctx, tx, websocketPkg.EventTransactionDeleted)

	return nil
}

func (s *transactionService) ListTransactions(ctx context.Context, req transaction.ListTransactionsQuery) (transaction.TransactionListResponse, error) {
	filter, err := s.listFilter(req)
	if err != nil {
		return transaction.TransactionListResponse{}, err
	}

	if _, err := s.workplaceService.GetWorkplace(ctx, req.OwnerID, req.WorkplaceID); err != nil {
		return transaction.TransactionListResponse{}, err
	}

	txs, err := s.Find(ctx, filter)
	if err != nil {
		return transaction.TransactionListResponse{}, err
	}

	result := transaction.TransactionListResponse{
		Transactions: make([]transaction.TransactionResponse, 0, len(txs)),
		Count:        len(txs),
	}
	for _, tx := range txs {
		result.Transactions = append(result.Transactions, makeTransactionResponse(tx))
	}

	return result, nil
}

func (s *transactionService) listFilter(req transaction.ListTransactionsQuery) (query.Filter, error) {
	now := s.now().In(s.location)

	if req.From != "" || req.To != "" {
		from, err := s.parseDate(req.From)
		if err != nil {
			return query.Filter{}, err
		}
		to, err := s.parseDate(req.To)
		if err != nil {
			return query.Filter{}, err
		}
		return query.CustomRange(req.OwnerID, req.WorkplaceID, from, to)
	}

	year := req.Year
	if year == 0 {
		year = now.Year()
	}

	if req.Month != 0 {
		return query.MonthOf(req.OwnerID, req.WorkplaceID, year, req.Month)
	}

	return query.YearToDate(req.OwnerID, req.WorkplaceID, year, now)
}

func (s *transactionService) Find(ctx context.Context, filter query.Filter) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, transaction.ErrFetchTransactions
	}

	txs, err := repo.Transactions.Find(ctx, filter)
	if err != nil {
		return nil, response.Wrap(transaction.ErrFetchTransactions, err.Error())
	}

	for i := range txs {
		txs[i].OccurredAt = txs[i].OccurredAt.In(s.location)
	}

	return txs, nil
}

func (s *transactionService) Watch(ctx context.Context, ownerID string, workplaceID string) (<-chan websocketPkg.Event, func(), error) {
	if _, err := s.workplaceService.GetWorkplace(ctx, ownerID, workplaceID); err != nil {
		return nil, nil, err
	}

	events, release := s.hub.Subscribe(ownerID, workplaceID)
	return events, release, nil
}

// afterMutation invalidates cached summaries of the workplace and tells its
// subscribers to reload. Neither step can fail the mutation.
func (s *transactionService) afterMutation(ctx context.Context, tx entity.Transaction, eventType websocketPkg.EventType) {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := s.redisServer.Incr(ctx, summaryVersionKey(tx.OwnerID, tx.WorkplaceID)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"workplace_id": tx.WorkplaceID,
			"error":        err.Error(),
		}).Warn("Failed to invalidate summary cache")
	}

	s.hub.Publish(tx.OwnerID, websocketPkg.Event{
		Type:          eventType,
		WorkplaceID:   tx.WorkplaceID,
		TransactionID: tx.ID,
		Year:          tx.Year,
		Month:         tx.Month,
		At:            s.now(),
	})
}

func (s *transactionService) parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, transaction.ErrMissingDate
	}

	t, err := time.ParseInLocation(transaction.DateLayout, value, s.location)
	if err != nil {
		return time.Time{}, response.Wrap(transaction.ErrInvalidTransaction, fmt.Sprintf("date %q is not YYYY-MM-DD", value))
	}

	return t, nil
}
