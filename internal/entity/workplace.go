package entity

import (
	"FinTrack/internal/api/workplace"
	"strings"
	"time"
)

type Workplace struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NormalizeWorkplaceName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (w *Workplace) Validate() error {
	if NormalizeWorkplaceName(w.Name) == "" {
		return workplace.ErrWorkplaceNameRequired
	}
	return nil
}

// PickCurrent resolves the current workplace: the saved id when it is still active,
// otherwise the first active workplace. ok is false when there is none.
func PickCurrent(workplaces []Workplace, savedID string) (Workplace, bool) {
	var first *Workplace
	for i := range workplaces {
		if !workplaces[i].IsActive {
			continue
		}
		if workplaces[i].ID == savedID && savedID != "" {
			return workplaces[i], true
		}
		if first == nil {
			first = &workplaces[i]
		}
	}
	if first == nil {
		return Workplace{}, false
	}
	return *first, true
}
