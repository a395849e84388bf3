package model

type Rewards struct {
	Experience int      `json:"experience"`
	Currency   int      `json:"currency"`
	StatPoints int      `json:"stat_points"`
	Items      []string `json:"items"`
}

type Quest struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	ProofType          string  `json:"proof_type"`
	VerificationMethod string  `json:"verification_method"`
	Status             string  `json:"status"`
	Rewards            Rewards `json:"rewards"`
}

type CreateQuestRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	ProofType          string   `json:"proof_type"`
	VerificationMethod string   `json:"verification_method"`
	Experience         int      `json:"experience"`
	Currency           int      `json:"currency"`
	StatPoints         int      `json:"stat_points"`
	Items              []string `json:"items"`
}

type CreateQuestResponse struct {
	ID string `json:"id"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse Quest

type GetListQuestRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}
