// Package pg implements the storage ports on Postgres via pgx. It is the
// "real backend" counterpart to the fixture-backed memory adapters and is
// selected with DATA_BACKEND=postgres.
package pg

import (
	"strconv"
	"time"

	"cafirm-backend/internal/domain"
)

func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// scannedActivity receives the nullable activity columns of a LEFT JOIN.
type scannedActivity struct {
	ID            *string
	Name          *string
	ServiceID     *string
	Frequency     *string
	Amount        *int64
	Deadline      *time.Time
	FinancialYear *string
}

func (a scannedActivity) toDomain() (domain.Activity, bool) {
	if a.ID == nil {
		return domain.Activity{}, false
	}
	out := domain.Activity{
		ID:       *a.ID,
		Deadline: a.Deadline,
	}
	if a.Name != nil {
		out.Name = *a.Name
	}
	if a.ServiceID != nil {
		out.ServiceID = *a.ServiceID
	}
	if a.Frequency != nil {
		out.Frequency = domain.Frequency(*a.Frequency)
	}
	if a.Amount != nil {
		out.Amount = *a.Amount
	}
	if a.FinancialYear != nil {
		out.FinancialYear = *a.FinancialYear
	}
	return out, true
}
