package client

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"net/url"
	"strconv"
)

// Transactions fetches the year-to-date transactions of a workplace, newest first.
func (c *Client) Transactions(ctx context.Context, workplaceID string, year int) ([]entity.Transaction, error) {
	res, err := c.ListTransactions(ctx, transaction.ListTransactionsQuery{WorkplaceID: workplaceID, Year: year})
	if err != nil {
		return nil, err
	}

	txs := make([]entity.Transaction, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		txs = append(txs, makeTransaction(tx))
	}
	return txs, nil
}

func (c *Client) ListTransactions(ctx context.Context, q transaction.ListTransactionsQuery) (transaction.TransactionListResponse, error) {
	query := url.Values{"workplace_id": {q.WorkplaceID}}
	if q.Year > 0 {
		query.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month > 0 {
		query.Set("month", strconv.Itoa(q.Month))
	}
	if q.From != "" {
		query.Set("from", q.From)
		query.Set("to", q.To)
	}

	var res transaction.TransactionListResponse
	err := c.do(ctx, fiber.MethodGet, "/transactions", query, nil, &res, true)
	return res, err
}

func (c *Client) AddTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.TransactionResponse, error) {
	var res transaction.TransactionResponse
	err := c.do(ctx, fiber.MethodPost, "/transactions", nil, req, &res, true)
	return res, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil, nil, true)
}

func (c *Client) Summary(ctx context.Context, q transaction.SummaryQuery) (transaction.SummaryResponse, error) {
	query := url.Values{"workplace_id": {q.WorkplaceID}}
	if q.Year > 0 {
		query.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month > 0 {
		query.Set("month", strconv.Itoa(q.Month))
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}

	var res transaction.SummaryResponse
	err := c.do(ctx, fiber.MethodGet, "/transactions/summary", query, nil, &res, true)
	return res, err
}

func makeTransaction(tx transaction.TransactionResponse) entity.Transaction {
	return entity.Transaction{
		ID:          tx.ID,
		WorkplaceID: tx.WorkplaceID,
		Type:        entity.TransactionType(tx.Type),
		Method:      entity.PaymentMethod(tx.Method),
		Amount:      tx.Amount,
		Note:        tx.Note,
		OccurredAt:  tx.OccurredAt,
		Year:        tx.Year,
		Month:       tx.Month,
		CreatedAt:   tx.CreatedAt,
	}
}
