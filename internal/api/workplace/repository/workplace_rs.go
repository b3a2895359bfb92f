package workplaceRepository

import (
	"FinTrack/internal/api/workplace"
	"FinTrack/internal/entity"
	contextPkg "FinTrack/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type WorkplaceDB struct {
	ID        sql.NullString `db:"id"`
	OwnerID   sql.NullString `db:"owner_id"`
	Name      sql.NullString `db:"name"`
	IsActive  bool           `db:"is_active"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *workplaceRepository) CreateWorkplace(c context.Context, w entity.Workplace) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         w.ID,
		"owner_id":   w.OwnerID,
		"name":       w.Name,
		"is_active":  w.IsActive,
		"created_at": w.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateWorkplace, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateWorkplace")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"constraint": pqErr.Constraint,
			}).Warn("Active workplace name already exists")
			return workplace.ErrWorkplaceExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating workplace")
		return err
	}

	return nil
}

func (r *workplaceRepository) GetByID(c context.Context, ownerID string, id string) (entity.Workplace, error) {
	requestID := contextPkg.GetRequestID(c)
	var row WorkplaceDB

	argsKV := map[string]interface{}{
		"id":       id,
		"owner_id": ownerID,
	}

	query, args, err := sqlx.Named(queryGetWorkplaceByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Workplace{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"workplace_id": id,
			}).Warn("GetByID no rows found")
			return entity.Workplace{}, workplace.ErrWorkplaceNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Workplace{}, err
	}

	return r.makeWorkplace(row), nil
}

func (r *workplaceRepository) ListActive(c context.Context, ownerID string) ([]entity.Workplace, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []WorkplaceDB

	query, args, err := sqlx.Named(queryListActiveWorkplaces, map[string]interface{}{
		"owner_id": ownerID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListActive named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListActive execution err")
		return nil, err
	}

	result := make([]entity.Workplace, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeWorkplace(row))
	}

	return result, nil
}

func (r *workplaceRepository) ActiveNameExists(c context.Context, ownerID string, name string) (bool, error) {
	requestID := contextPkg.GetRequestID(c)
	var exists bool

	query, args, err := sqlx.Named(queryActiveNameExists, map[string]interface{}{
		"owner_id": ownerID,
		"name":     name,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ActiveNameExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ActiveNameExists execution err")
		return false, err
	}

	return exists, nil
}

func (r *workplaceRepository) Deactivate(c context.Context, ownerID string, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeactivateWorkplace, map[string]interface{}{
		"id":       id,
		"owner_id": ownerID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Deactivate named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Deactivate execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Deactivate rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"workplace_id": id,
		}).Warn("Deactivate no rows affected")
		return workplace.ErrWorkplaceNotFound
	}

	return nil
}

func (r *workplaceRepository) makeWorkplace(row WorkplaceDB) entity.Workplace {
	return entity.Workplace{
		ID:        row.ID.String,
		OwnerID:   row.OwnerID.String,
		Name:      row.Name.String,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}
}
