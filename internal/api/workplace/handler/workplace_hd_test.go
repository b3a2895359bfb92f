package workplaceHandler

import (
	"FinTrack/internal/api/workplace"
	"FinTrack/internal/entity"
	"FinTrack/internal/middleware"
	jwtPkg "FinTrack/pkg/jwt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeService struct {
	created     workplace.CreateWorkplaceRequest
	deactivated string
}

func (f *fakeService) CreateWorkplace(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error) {
	if req.Name == "Home" {
		return workplace.WorkplaceResponse{}, workplace.ErrWorkplaceExists
	}
	f.created = req
	return workplace.WorkplaceResponse{ID: "w1", Name: req.Name, IsActive: true}, nil
}

func (f *fakeService) ListWorkplaces(ctx context.Context, ownerID string) ([]workplace.WorkplaceResponse, error) {
	return []workplace.WorkplaceResponse{{ID: "w1", Name: "Clinic", IsActive: true}}, nil
}

func (f *fakeService) GetWorkplace(ctx context.Context, ownerID string, id string) (workplace.WorkplaceResponse, error) {
	return workplace.WorkplaceResponse{}, workplace.ErrWorkplaceNotFound
}

func (f *fakeService) DeactivateWorkplace(ctx context.Context, ownerID string, id string) error {
	f.deactivated = ownerID + "/" + id
	return nil
}

func (f *fakeService) GetActive(ctx context.Context, ownerID string, id string) (entity.Workplace, error) {
	return entity.Workplace{}, workplace.ErrWorkplaceNotFound
}

func newTestApp(t *testing.T) (*fiber.App, *fakeService, string) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := &fakeService{}
	mw := middleware.New(logger, nil)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":    "u1",
		"email": "ana@example.com",
	}, "jti-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	return app, svc, token
}

func TestCreateWorkplaceHandler(t *testing.T) {
	app, svc, token := newTestApp(t)

	tests := []struct {
		name       string
		body       string
		auth       bool
		wantStatus int
	}{
		{"created", `{"name":"Clinic","owner_id":"someone-else"}`, true, fiber.StatusCreated},
		{"duplicate", `{"name":"Home"}`, true, fiber.StatusConflict},
		{"missing name", `{}`, true, fiber.StatusBadRequest},
		{"no token", `{"name":"Clinic"}`, false, fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/api/v1/workplaces", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
			if tt.auth {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			res, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if res.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.wantStatus)
			}
		})
	}

	if svc.created.OwnerID != "u1" {
		t.Errorf("owner = %q, want token owner u1", svc.created.OwnerID)
	}
}

func TestListAndGetWorkplace(t *testing.T) {
	app, _, token := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/workplaces", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var list []workplace.WorkplaceResponse
	if err := jsoniter.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Clinic" {
		t.Errorf("list = %+v", list)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/workplaces/missing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", res.StatusCode)
	}
}

func TestDeactivateWorkplaceHandler(t *testing.T) {
	app, svc, token := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/v1/workplaces/w1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if svc.deactivated != "u1/w1" {
		t.Errorf("deactivated = %q", svc.deactivated)
	}
}
