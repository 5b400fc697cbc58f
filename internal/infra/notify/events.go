package notify

// ChannelScheduleChanged канал redis pub/sub для событий изменения расписания
const ChannelScheduleChanged = "schedule.changed"

// Причины изменения расписания
const (
	ReasonBooked        = "booked"
	ReasonCancelled     = "cancelled"
	ReasonConfigUpdated = "config_updated"
)

// ScheduleChangedEvent событие изменения расписания владельца.
// Date в формате YYYY-MM-DD, для config_updated может быть пустой.
type ScheduleChangedEvent struct {
	OwnerID int64  `json:"owner_id"`
	Date    string `json:"date,omitempty"`
	Reason  string `json:"reason"`
}
