package workplaceService

import (
	"FinTrack/internal/api/workplace"
	workplaceRepository "FinTrack/internal/api/workplace/repository"
	"FinTrack/internal/entity"
	"FinTrack/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IWorkplaceService interface {
	CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error)
	ListWorkplaces(ctx context.Context, ownerID string) ([]workplace.WorkplaceResponse, error)
	GetWorkplace(ctx context.Context, ownerID string, id string) (workplace.WorkplaceResponse, error)
	DeactivateWorkplace(ctx context.Context, ownerID string, id string) error

	// GetActive is used by the transaction and report services to scope their reads.
	GetActive(ctx context.Context, ownerID string, id string) (entity.Workplace, error)
}

type workplaceService struct {
	log                 *logrus.Logger
	workplaceRepository workplaceRepository.Repository
	utils               utils.IUtils
	now                 func() time.Time
}

func New(log *logrus.Logger, wr workplaceRepository.Repository, utils utils.IUtils) IWorkplaceService {
	return &workplaceService{
		log:                 log,
		workplaceRepository: wr,
		utils:               utils,
		now:                 time.Now,
	}
}

func makeWorkplaceResponse(w entity.Workplace) workplace.WorkplaceResponse {
	return workplace.WorkplaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}
