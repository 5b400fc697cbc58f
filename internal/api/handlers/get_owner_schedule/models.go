package get_owner_schedule

import (
	"time"

	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров.
// Даты from и to включительны: окно запроса [from 00:00, to+1день 00:00).
func ToServiceRequest(ownerID int64, identity middleware.Identity, fromStr, toStr string) (*models.GetOwnerScheduleRequest, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &models.GetOwnerScheduleRequest{
		UserID:  identity.UserID,
		Role:    identity.Role,
		OwnerID: ownerID,
		From:    from,
		To:      to.AddDate(0, 0, 1),
	}, nil
}
