package model

type UserStatistic struct {
	UserID      string `json:"user_id"`
	Experience  int    `json:"experience"`
	CurrentRank int    `json:"current_rank"`
}

type GetLeaderBoardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`

	// MyRank is the 1-based rank of the requester, 0 if not ranked yet.
	MyRank uint64 `json:"my_rank"`
}
