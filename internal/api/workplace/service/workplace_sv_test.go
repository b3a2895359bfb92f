package workplaceService

import (
	"FinTrack/internal/api/workplace"
	workplaceRepository "FinTrack/internal/api/workplace/repository"
	"FinTrack/internal/entity"
	"FinTrack/pkg/utils"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"sync"
	"testing"
	"time"
)

type fakeWorkplaces struct {
	mu   sync.Mutex
	rows []entity.Workplace
}

func (f *fakeWorkplaces) CreateWorkplace(ctx context.Context, w entity.Workplace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, w)
	return nil
}

func (f *fakeWorkplaces) GetByID(ctx context.Context, ownerID string, id string) (entity.Workplace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.rows {
		if w.ID == id && w.OwnerID == ownerID {
			return w, nil
		}
	}
	return entity.Workplace{}, workplace.ErrWorkplaceNotFound
}

func (f *fakeWorkplaces) ListActive(ctx context.Context, ownerID string) ([]entity.Workplace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Workplace
	for _, w := range f.rows {
		if w.OwnerID == ownerID && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkplaces) ActiveNameExists(ctx context.Context, ownerID string, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.rows {
		if w.OwnerID == ownerID && w.IsActive && w.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWorkplaces) Deactivate(ctx context.Context, ownerID string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].OwnerID == ownerID && f.rows[i].IsActive {
			f.rows[i].IsActive = false
			return nil
		}
	}
	return workplace.ErrWorkplaceNotFound
}

type fakeRepository struct {
	workplaces *fakeWorkplaces
	commits    int
}

func (f *fakeRepository) NewClient(tx bool) (workplaceRepository.Client, error) {
	noop := func() error { return nil }
	return workplaceRepository.Client{
		Workplaces: f.workplaces,
		Commit: func() error {
			f.commits++
			return nil
		},
		Rollback: noop,
	}, nil
}

func newTestService() (IWorkplaceService, *fakeRepository) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := &fakeRepository{workplaces: &fakeWorkplaces{}}
	svc := New(logger, repo, utils.New()).(*workplaceService)
	tick := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc, repo
}

func TestCreateWorkplace(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	res, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "  Main   Clinic ", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("CreateWorkplace() error = %v", err)
	}
	if res.Name != "Main Clinic" || !res.IsActive || res.ID == "" {
		t.Errorf("response = %+v", res)
	}
	if repo.commits != 1 {
		t.Errorf("commits = %d, want 1", repo.commits)
	}
}

func TestCreateWorkplaceRejects(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "Home", OwnerID: "u1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		req     workplace.CreateWorkplaceRequest
		wantErr error
	}{
		{"blank", workplace.CreateWorkplaceRequest{Name: "   ", OwnerID: "u1"}, workplace.ErrWorkplaceNameRequired},
		{"duplicate", workplace.CreateWorkplaceRequest{Name: " Home ", OwnerID: "u1"}, workplace.ErrWorkplaceExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateWorkplace(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "Home", OwnerID: "u2"}); err != nil {
		t.Errorf("same name for another owner: %v", err)
	}
}

func TestDeactivateFreesName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	home, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "Home", OwnerID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeactivateWorkplace(ctx, "u1", home.ID); err != nil {
		t.Fatalf("DeactivateWorkplace() error = %v", err)
	}

	list, err := svc.ListWorkplaces(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("active workplaces = %d, want 0", len(list))
	}

	if _, err := svc.GetActive(ctx, "u1", home.ID); !errors.Is(err, workplace.ErrWorkplaceInactive) {
		t.Errorf("GetActive err = %v, want ErrWorkplaceInactive", err)
	}

	if _, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "Home", OwnerID: "u1"}); err != nil {
		t.Errorf("recreate after deactivate: %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	home, err := svc.CreateWorkplace(ctx, workplace.CreateWorkplaceRequest{Name: "Home", OwnerID: "u1"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetWorkplace(ctx, "u2", home.ID); !errors.Is(err, workplace.ErrWorkplaceNotFound) {
		t.Errorf("GetWorkplace err = %v, want ErrWorkplaceNotFound", err)
	}
	if err := svc.DeactivateWorkplace(ctx, "u2", home.ID); !errors.Is(err, workplace.ErrWorkplaceNotFound) {
		t.Errorf("DeactivateWorkplace err = %v, want ErrWorkplaceNotFound", err)
	}
}
