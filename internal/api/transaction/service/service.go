package transactionService

import (
	"FinTrack/internal/api/transaction"
	transactionRepository "FinTrack/internal/api/transaction/repository"
	workplaceService "FinTrack/internal/api/workplace/service"
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	"FinTrack/pkg/redis"
	"FinTrack/pkg/utils"
	websocketPkg "FinTrack/pkg/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type ITransactionService interface {
	CreateTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, ownerID string, id string) error
	ListTransactions(ctx context.Context, req transaction.ListTransactionsQuery) (transaction.TransactionListResponse, error)
	Summary(ctx context.Context, req transaction.SummaryQuery) (transaction.SummaryResponse, error)

	// Find returns the transactions matching filter in display order, with times in
	// the application zone.
	Find(ctx context.Context, filter query.Filter) ([]entity.Transaction, error)

	// Watch subscribes to mutation events of one of the owner's workplaces.
	Watch(ctx context.Context, ownerID string, workplaceID string) (<-chan websocketPkg.Event, func(), error)

	Location() *time.Location
}

type transactionService struct {
	log                   *logrus.Logger
	transactionRepository transactionRepository.Repository
	workplaceService      workplaceService.IWorkplaceService
	redisServer           redis.IRedis
	hub                   websocketPkg.IHub
	utils                 utils.IUtils
	location              *time.Location
	summaryTTL            time.Duration
	now                   func() time.Time
}

func New(
	log *logrus.Logger,
	tr transactionRepository.Repository,
	ws workplaceService.IWorkplaceService,
	redisServer redis.IRedis,
	hub websocketPkg.IHub,
	utils utils.IUtils,
	location *time.Location,
) ITransactionService {
	return &transactionService{
		log:                   log,
		transactionRepository: tr,
		workplaceService:      ws,
		redisServer:           redisServer,
		hub:                   hub,
		utils:                 utils,
		location:              location,
		summaryTTL:            10 * time.Minute,
		now:                   time.Now,
	}
}

func (s *transactionService) Location() *time.Location {
	return s.location
}

func makeTransactionResponse(tx entity.Transaction) transaction.TransactionResponse {
	return transaction.TransactionResponse{
		ID:          tx.ID,
		WorkplaceID: tx.WorkplaceID,
		Type:        string(tx.Type),
		Method:      string(tx.Method),
		Amount:      tx.Amount,
		Note:        tx.Note,
		OccurredAt:  tx.OccurredAt,
		Year:        tx.Year,
		Month:       tx.Month,
		CreatedAt:   tx.CreatedAt,
	}
}
