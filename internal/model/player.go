package model

// ClientPlayer is a seat as clients see it. The bot's seat carries the ID "bot".
type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}

// BotSeat describes the computer opponent of a game. The move selector itself
// lives outside this package; the seat only records how to build one.
type BotSeat struct {
	Color    Color  `json:"color"`
	Strength int    `json:"strength"`
	Policy   string `json:"policy"`
}
