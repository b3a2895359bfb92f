package transactionRepository

const (
	queryCreateTransaction = `
INSERT INTO transactions (id, owner_id, workplace_id, type, method, amount, note, occurred_at, year, month, created_at)
VALUES (:id, :owner_id, :workplace_id, :type, :method, :amount, :note, :occurred_at, :year, :month, :created_at)`

	queryGetTransactionByID = `
SELECT id, owner_id, workplace_id, type, method, amount, note, occurred_at, year, month, created_at
FROM transactions
    WHERE id = :id`

	queryDeleteTransaction = `
DELETE FROM transactions
WHERE id = :id AND owner_id = :owner_id`

	// querySelectTransactions is completed by query.Filter.SQL.
	querySelectTransactions = `
SELECT id, owner_id, workplace_id, type, method, amount, note, occurred_at, year, month, created_at
FROM transactions`
)
