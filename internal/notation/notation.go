// Package notation converts between the engine's (row, column) squares and
// algebraic text, and renders boards for people. The engine never imports it.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/botchess-backend/internal/model"
)

var (
	ErrBadSquare = errors.New("malformed square")
	ErrBadMove   = errors.New("malformed move")
)

// ParseSquare reads a square such as "e2". Files are a-h, ranks 1-8.
func ParseSquare(s string) (model.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return model.Square{}, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return model.Square{}, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return model.Sq(int(rank-'1'), int(file-'a')), nil
}

// FormatSquare renders s as "e2". Out of range squares render as "??".
func FormatSquare(s model.Square) string {
	if !s.InBounds() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

// ParseMove reads "e2e4", "e2 e4" or "e2-e4".
func ParseMove(s string) (model.Move, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	if len(fields) == 1 && len(fields[0]) == 4 {
		fields = []string{fields[0][:2], fields[0][2:]}
	}
	if len(fields) != 2 {
		return model.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	from, err := ParseSquare(fields[0])
	if err != nil {
		return model.Move{}, fmt.Errorf("%w: %w", ErrBadMove, err)
	}
	to, err := ParseSquare(fields[1])
	if err != nil {
		return model.Move{}, fmt.Errorf("%w: %w", ErrBadMove, err)
	}
	return model.Move{From: from, To: to}, nil
}

// FormatMove renders m as "e2e4".
func FormatMove(m model.Move) string {
	return FormatSquare(m.From) + FormatSquare(m.To)
}

// FormatRecord renders an applied move as "Ne5xd7"-style long notation.
func FormatRecord(r model.MoveRecord) string {
	sep := "-"
	if r.IsCapture() {
		sep = "x"
	}
	return letter(r.Piece.Type) + FormatSquare(r.From) + sep + FormatSquare(r.To)
}

func letter(t model.PieceType) string {
	switch t {
	case model.King:
		return "K"
	case model.Queen:
		return "Q"
	case model.Rook:
		return "R"
	case model.Bishop:
		return "B"
	case model.Knight:
		return "N"
	}
	return ""
}
