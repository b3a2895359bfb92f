package transactionRepository

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	contextPkg "FinTrack/pkg/context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type TransactionDB struct {
	ID          sql.NullString  `db:"id"`
	OwnerID     sql.NullString  `db:"owner_id"`
	WorkplaceID sql.NullString  `db:"workplace_id"`
	Type        sql.NullString  `db:"type"`
	Method      sql.NullString  `db:"method"`
	Amount      decimal.Decimal `db:"amount"`
	Note        sql.NullString  `db:"note"`
	OccurredAt  sql.NullTime    `db:"occurred_at"`
	Year        sql.NullInt32   `db:"year"`
	Month       sql.NullInt32   `db:"month"`
	CreatedAt   sql.NullTime    `db:"created_at"`
}

func (r *transactionRepository) CreateTransaction(c context.Context, tx entity.Transaction) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":           tx.ID,
		"owner_id":     tx.OwnerID,
		"workplace_id": tx.WorkplaceID,
		"type":         string(tx.Type),
		"method":       string(tx.Method),
		"amount":       tx.Amount,
		"note":         sql.NullString{String: tx.Note, Valid: tx.Note != ""},
		"occurred_at":  tx.OccurredAt,
		"year":         tx.Year,
		"month":        tx.Month,
		"created_at":   tx.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTransaction")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating transaction")
		return err
	}

	return nil
}

func (r *transactionRepository) GetByID(c context.Context, id string) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var row TransactionDB

	query, args, err := sqlx.Named(queryGetTransactionByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Transaction{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":     requestID,
				"transaction_id": id,
			}).Warn("GetByID no rows found")
			return entity.Transaction{}, transaction.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Transaction{}, err
	}

	return r.makeTransaction(row), nil
}

func (r *transactionRepository) Delete(c context.Context, ownerID string, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteTransaction, map[string]interface{}{
		"id":       id,
		"owner_id": ownerID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Delete named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Delete execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"transaction_id": id,
		}).Warn("Delete no rows affected")
		return transaction.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) Find(c context.Context, filter query.Filter) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TransactionDB

	stmt, argsKV := filter.SQL(querySelectTransactions)

	q, args, err := sqlx.Named(stmt, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Find named query preparation err")
		return nil, err
	}

	q = r.q.Rebind(q)

	if err := sqlx.SelectContext(c, r.q, &rows, q, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"workplace_id": filter.WorkplaceID,
			"error":        err.Error(),
		}).Error("Find execution err")
		return nil, err
	}

	result := make([]entity.Transaction, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeTransaction(row))
	}

	return result, nil
}

func (r *transactionRepository) makeTransaction(row TransactionDB) entity.Transaction {
	return entity.Transaction{
		ID:          row.ID.String,
		OwnerID:     row.OwnerID.String,
		WorkplaceID: row.WorkplaceID.String,
		Type:        entity.TransactionType(row.Type.String),
		Method:      entity.PaymentMethod(row.Method.String),
		Amount:      row.Amount,
		Note:        row.Note.String,
		OccurredAt:  row.OccurredAt.Time,
		Year:        int(row.Year.Int32),
		Month:       int(row.Month.Int32),
		CreatedAt:   row.CreatedAt.Time,
	}
}
