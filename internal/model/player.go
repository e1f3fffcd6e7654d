package model

type ClientPlayer struct {
	ID    string     `json:"id"`
	Color PieceColor `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p Players) colorOf(playerID string) (PieceColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.White.ID == playerID:
		return White, true
	case p.Black.ID == playerID:
		return Black, true
	}
	return "", false
}
