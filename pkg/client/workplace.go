package client

import (
	"FinTrack/internal/api/workplace"
	"FinTrack/internal/entity"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"net/url"
)

// Workplaces lists the caller's active workplaces in creation order.
func (c *Client) Workplaces(ctx context.Context) ([]entity.Workplace, error) {
	var res []workplace.WorkplaceResponse
	if err := c.do(ctx, fiber.MethodGet, "/workplaces", nil, nil, &res, true); err != nil {
		return nil, err
	}

	workplaces := make([]entity.Workplace, 0, len(res))
	for _, w := range res {
		workplaces = append(workplaces, entity.Workplace{
			ID:        w.ID,
			Name:      w.Name,
			IsActive:  w.IsActive,
			CreatedAt: w.CreatedAt,
		})
	}
	return workplaces, nil
}

func (c *Client) CreateWorkplace(ctx context.Context, name string) (workplace.WorkplaceResponse, error) {
	var res workplace.WorkplaceResponse
	err := c.do(ctx, fiber.MethodPost, "/workplaces", nil, workplace.CreateWorkplaceRequest{Name: name}, &res, true)
	return res, err
}

func (c *Client) DeactivateWorkplace(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/workplaces/"+url.PathEscape(id), nil, nil, nil, true)
}
