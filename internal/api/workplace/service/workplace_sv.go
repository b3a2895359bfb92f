package workplaceService

import (
	"FinTrack/internal/api/workplace"
	"FinTrack/internal/entity"
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/response"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *workplaceService) CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	now := s.now()
	w := entity.Workplace{
		OwnerID:   req.OwnerID,
		Name:      entity.NormalizeWorkplaceName(req.Name),
		IsActive:  true,
		CreatedAt: now,
	}

	if err := w.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid workplace data")
		return workplace.WorkplaceResponse{}, err
	}

	repo, err := s.workplaceRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return workplace.WorkplaceResponse{}, workplace.ErrCreateWorkplace
	}
	defer func() {
		if err := repo.Rollback(); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Debug("Rollback after create workplace")
		}
	}()

	exists, err := repo.Workplaces.ActiveNameExists(ctx, w.OwnerID, w.Name)
	if err != nil {
		return workplace.WorkplaceResponse{}, response.Wrap(workplace.ErrCreateWorkplace, err.Error())
	}
	if exists {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       w.Name,
		}).Warn("Active workplace name already taken")
		return workplace.WorkplaceResponse{}, workplace.ErrWorkplaceExists
	}

	w.ID, err = s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return workplace.WorkplaceResponse{}, workplace.ErrCreateWorkplace
	}

	if err := repo.Workplaces.CreateWorkplace(ctx, w); err != nil {
		if errors.Is(err, workplace.ErrWorkplaceExists) {
			return workplace.WorkplaceResponse{}, err
		}
		return workplace.WorkplaceResponse{}, response.Wrap(workplace.ErrCreateWorkplace, err.Error())
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit workplace")
		return workplace.WorkplaceResponse{}, workplace.ErrCreateWorkplace
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"workplace_id": w.ID,
	}).Info("Workplace created")

	return makeWorkplaceResponse(w), nil
}

func (s *workplaceService) ListWorkplaces(ctx context.Context, ownerID string) ([]workplace.WorkplaceResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.workplaceRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	workplaces, err := repo.Workplaces.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]workplace.WorkplaceResponse, 0, len(workplaces))
	for _, w := range workplaces {
		result = append(result, makeWorkplaceResponse(w))
	}

	return result, nil
}

func (s *workplaceService) GetWorkplace(ctx context.Context, ownerID string, id string) (workplace.WorkplaceResponse, error) {
	w, err := s.get(ctx, ownerID, id)
	if err != nil {
		return workplace.WorkplaceResponse{}, err
	}
	return makeWorkplaceResponse(w), nil
}

func (s *workplaceService) GetActive(ctx context.Context, ownerID string, id string) (entity.Workplace, error) {
	w, err := s.get(ctx, ownerID, id)
	if err != nil {
		return entity.Workplace{}, err
	}
	if !w.IsActive {
		return entity.Workplace{}, workplace.ErrWorkplaceInactive
	}
	return w, nil
}

func (s *workplaceService) get(ctx context.Context, ownerID string, id string) (entity.Workplace, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.workplaceRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Workplace{}, err
	}

	return repo.Workplaces.GetByID(ctx, ownerID, id)
}

func (s *workplaceService) DeactivateWorkplace(ctx context.Context, ownerID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.workplaceRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return workplace.ErrDeactivateWorkplace
	}

	if err := repo.Workplaces.Deactivate(ctx, ownerID, id); err != nil {
		if errors.Is(err, workplace.ErrWorkplaceNotFound) {
			return err
		}
		return response.Wrap(workplace.ErrDeactivateWorkplace, err.Error())
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"workplace_id": id,
	}).Info("Workplace deactivated")

	return nil
}
