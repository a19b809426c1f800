package notification

import "tasknag-backend/internal/task/domain"

// ReasonType names which trigger policy produced an event.
type ReasonType string

const (
	ReasonDueDate   ReasonType = "due_date_based"
	ReasonRecurring ReasonType = "recurring"
)

// FireReason carries why the matcher fired, so callers can render
// "due today / due in N days" copy for due-date triggers.
type FireReason struct {
	Type         ReasonType `json:"type"`
	DaysUntilDue int        `json:"daysUntilDue,omitempty"`
}

// Event is one resolved notification, independent of delivery mechanism.
type Event struct {
	TaskID string     `json:"taskId"`
	Title  string     `json:"title"`
	Level  int        `json:"level"`
	Reason FireReason `json:"reason"`
}

// Channel is a delivery mechanism selected by the event's level.
type Channel string

const (
	ChannelToast    Channel = "toast"
	ChannelSound    Channel = "sound"
	ChannelMaximize Channel = "maximize"
)

// levelChannels is the single source of the level-to-channel mapping.
var levelChannels = map[int][]Channel{
	domain.LevelToast:    {ChannelToast},
	domain.LevelSound:    {ChannelToast, ChannelSound},
	domain.LevelMaximize: {ChannelToast, ChannelSound, ChannelMaximize},
}

// ChannelsForLevel returns the delivery channels for a notification level.
// Unknown levels are clamped into range first.
func ChannelsForLevel(level int) []Channel {
	return levelChannels[domain.ClampLevel(level)]
}
