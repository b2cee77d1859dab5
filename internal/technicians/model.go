package technicians

import "github.com/jambidev/barokah/internal/models"

type DayScheduleRequest struct {
	Available bool   `json:"available"`
	Start     string `json:"start" validate:"omitempty,clock"`
	End       string `json:"end" validate:"omitempty,clock"`
}

type UpsertRequest struct {
	Name            string                        `json:"name" validate:"required"`
	Phone           string                        `json:"phone" validate:"required,phone"`
	Email           string                        `json:"email" validate:"omitempty,email"`
	Specialization  []string                      `json:"specialization" validate:"omitempty,dive,required"`
	ExperienceYears int                           `json:"experienceYears" validate:"gte=0"`
	Rating          float64                       `json:"rating" validate:"gte=0,lte=5"`
	IsActive        *bool                         `json:"isActive"`
	Schedule        map[string]DayScheduleRequest `json:"schedule" validate:"omitempty,dive"`
}

func (r UpsertRequest) schedule() map[string]models.DaySchedule {
	if len(r.Schedule) == 0 {
		return nil
	}
	out := make(map[string]models.DaySchedule, len(r.Schedule))
	for day, entry := range r.Schedule {
		out[day] = models.DaySchedule{
			Available: entry.Available,
			Start:     entry.Start,
			End:       entry.End,
		}
	}
	return out
}
