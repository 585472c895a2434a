package database

// GameResult is one row of the finished-games table. Players are stored in
// seat order; seats 0/2 are team AB, seats 1/3 team CD.
type GameResult struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
	Player3    string `json:"player3"`
	Player4    string `json:"player4"`
	WinnerTeam string `json:"winner_team"`
	ScoreAB    int    `json:"score_ab"`
	ScoreCD    int    `json:"score_cd"`
}
