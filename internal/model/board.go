package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Value is the conventional material value, used by the move scorers.
func (p PieceType) Value() int {
	switch p {
	case Queen:
		return 9
	case Rook:
		return 5
	case Bishop, Knight:
		return 3
	case Pawn:
		return 1
	}
	return 0
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Valid reports whether c names one of the two sides.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Piece is an immutable value. Boards hold pointers to pieces, but a piece is
// never modified after it is placed.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c}
}

// Square is a (row, column) pair. Row 0 is White's back rank, column 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// Board is an 8x8 grid of optional pieces plus the side to move and the
// history of applied moves. It performs no validation; see IsLegal and Apply.
type Board struct {
	cells   [8][8]*Piece
	turn    Color
	history []MoveRecord
}

// BoardState is a detached, JSON friendly snapshot of a board.
type BoardState struct {
	Board     [8][8]*Piece `json:"board"`
	ToMove    Color        `json:"toMove"`
	MoveCount int          `json:"moveCount"`
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board in the standard starting arrangement with White to move.
func NewBoard() *Board {
	b := NewEmptyBoard(White)
	for col := 0; col < 8; col++ {
		b.cells[0][col] = NewPiece(backRank[col], White)
		b.cells[1][col] = NewPiece(Pawn, White)
		b.cells[6][col] = NewPiece(Pawn, Black)
		b.cells[7][col] = NewPiece(backRank[col], Black)
	}
	return b
}

// NewEmptyBoard returns a board with no pieces and the given side to move.
func NewEmptyBoard(turn Color) *Board {
	return &Board{turn: turn}
}

// Get returns the piece on s or nil. s must be in bounds.
func (b *Board) Get(s Square) *Piece {
	return b.cells[s.Row][s.Col]
}

// Set places p (or nil to clear) on s. s must be in bounds.
func (b *Board) Set(s Square, p *Piece) {
	b.cells[s.Row][s.Col] = p
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) SwitchTurn() {
	b.turn = b.turn.Opponent()
}

// MoveCount is the number of half-moves applied and not undone.
func (b *Board) MoveCount() int {
	return len(b.history)
}

// History returns a copy of the applied move records, oldest first.
func (b *Board) History() []MoveRecord {
	out := make([]MoveRecord, len(b.history))
	copy(out, b.history)
	return out
}

// LastMove returns the most recent record, if any.
func (b *Board) LastMove() (MoveRecord, bool) {
	if len(b.history) == 0 {
		return MoveRecord{}, false
	}
	return b.history[len(b.history)-1], true
}

// Clone returns an independent copy. Pieces are shared since they are immutable.
func (b *Board) Clone() *Board {
	c := &Board{cells: b.cells, turn: b.turn}
	c.history = b.History()
	return c
}

func (b *Board) State() BoardState {
	return BoardState{Board: b.cells, ToMove: b.turn, MoveCount: len(b.history)}
}

// Pieces returns every occupied square in row-major order.
func (b *Board) Pieces() []Square {
	var out []Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b.cells[row][col] != nil {
				out = append(out, Sq(row, col))
			}
		}
	}
	return out
}
