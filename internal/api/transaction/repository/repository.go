package transactionRepository

import (
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Transactions: &transactionRepository{q: db, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Transactions interface {
	CreateTransaction(ctx context.Context, tx entity.Transaction) error
	GetByID(ctx context.Context, id string) (entity.Transaction, error)
	Delete(ctx context.Context, ownerID string, id string) error
	Find(ctx context.Context, filter query.Filter) ([]entity.Transaction, error)
}

type Client struct {
	Transactions Transactions

	Commit   func() error
	Rollback func() error
}

type transactionRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
