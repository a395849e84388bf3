package model

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`

	Level      int `json:"level"`
	Experience int `json:"experience"`
	Currency   int `json:"currency"`
	StatPoints int `json:"stat_points"`

	CompletedQuestIDs []string `json:"completed_quest_ids"`
	ActiveQuestIDs    []string `json:"active_quest_ids"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse User
