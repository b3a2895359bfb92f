package aggregate

import (
	"FinTrack/internal/entity"
	"fmt"
	"time"
)

type Kind int

const (
	KindDefault Kind = iota
	KindMonth
	KindDate
)

// Selection narrows a year of transactions to one month or one calendar day.
// The zero value is the default selection.
type Selection struct {
	Kind  Kind
	Month int
	Date  time.Time
}

func Default() Selection {
	return Selection{Kind: KindDefault}
}

func Month(month int) Selection {
	return Selection{Kind: KindMonth, Month: month}
}

// Date selects one calendar day, evaluated in d's location.
func Date(d time.Time) Selection {
	return Selection{Kind: KindDate, Date: entity.StartOfDay(d)}
}

func (s Selection) Validate() error {
	switch s.Kind {
	case KindDefault:
		return nil
	case KindMonth:
		if !entity.IsValidMonth(s.Month) {
			return fmt.Errorf("month %d out of range", s.Month)
		}
		return nil
	case KindDate:
		if s.Date.IsZero() {
			return fmt.Errorf("date selection without a date")
		}
		return nil
	default:
		return fmt.Errorf("unknown selection kind %d", s.Kind)
	}
}

// Matches reports whether tx falls inside a month or date selection. A default
// selection matches nothing until resolved by Select.
func (s Selection) Matches(tx entity.Transaction) bool {
	switch s.Kind {
	case KindMonth:
		return tx.Month == s.Month
	case KindDate:
		return entity.SameDay(tx.OccurredAt, s.Date)
	default:
		return false
	}
}

func (s Selection) String() string {
	switch s.Kind {
	case KindMonth:
		return fmt.Sprintf("month=%d", s.Month)
	case KindDate:
		return "date=" + s.Date.Format("2006-01-02")
	default:
		return "default"
	}
}
