package workplaceRepository

import (
	"FinTrack/internal/entity"
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
		Workplaces: &workplaceRepository{q: db, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Workplaces interface {
	CreateWorkplace(ctx context.Context, workplace entity.Workplace) error
	GetByID(ctx context.Context, ownerID string, id string) (entity.Workplace, error)
	ListActive(ctx context.Context, ownerID string) ([]entity.Workplace, error)
	ActiveNameExists(ctx context.Context, ownerID string, name string) (bool, error)
	Deactivate(ctx context.Context, ownerID string, id string) error
}

type Client struct {
	Workplaces Workplaces

	Commit   func() error
	Rollback func() error
}

type workplaceRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
