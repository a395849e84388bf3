package notification

// Event is a single user-facing notification payload published to the sink.
type Event interface {
	Op() string
}

type Metadata struct {
	To string `json:"to"`
}

type EventRequest struct {
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

type QuestCompletionEvent struct {
	QuestID string `json:"quest_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (QuestCompletionEvent) Op() string {
	return "quest_completion"
}

type LevelUpEvent struct {
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

func (LevelUpEvent) Op() string {
	return "level_up"
}
