package authRepository

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/entity"
	contextPkg "FinTrack/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type UserDB struct {
	ID        sql.NullString `db:"id"`
	Email     sql.NullString `db:"email"`
	Name      sql.NullString `db:"name"`
	Password  sql.NullString `db:"password"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (r *userRepository) CreateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"password":   user.Password,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"constraint": pqErr.Constraint,
			}).Warn("Email already exists")
			return auth.ErrEmailAlreadyExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")

		return err
	}

	return nil
}

func (r *userRepository) GetByID(c context.Context, id string) (entity.User, error) {
	return r.getOne(c, queryGetById, map[string]interface{}{"id": id}, "GetByID")
}

func (r *userRepository) GetByEmail(c context.Context, email string) (entity.User, error) {
	return r.getOne(c, queryGetByEmail, map[string]interface{}{"email": email}, "GetByEmail")
}

func (r *userRepository) getOne(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var user UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn(op + " no rows found")
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.User{}, err
	}

	return r.makeUser(user), nil
}

func (r *userRepository) makeUser(user UserDB) entity.User {
	return entity.User{
		ID:        user.ID.String,
		Email:     user.Email.String,
		Name:      user.Name.String,
		Password:  user.Password.String,
		CreatedAt: user.CreatedAt.Time,
		UpdatedAt: user.UpdatedAt.Time,
	}
}
