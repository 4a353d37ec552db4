// Command play runs a console game against the bot.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/notation"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	color := flag.String("color", "", "your color: white or black (asked if empty)")
	strength := flag.Int("strength", bot.DefaultStrength, fmt.Sprintf("bot strength, %d-%d", bot.MinStrength, bot.MaxStrength))
	policy := flag.String("policy", string(bot.PolicyWeighted), "bot policy: weighted or scoring")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	p, err := bot.ParsePolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	selector, err := bot.New(p, *strength, bot.NewRand(*seed))
	if err != nil {
		log.Fatal(err)
	}

	in := bufio.NewScanner(os.Stdin)
	human := model.Color(strings.ToLower(*color))
	for !human.Valid() {
		fmt.Print("Choose your color (white/black): ")
		if !in.Scan() {
			return
		}
		human = model.Color(strings.ToLower(strings.TrimSpace(in.Text())))
	}

	s := &session{board: model.NewBoard(), human: human, bot: selector, in: in, out: os.Stdout}
	if err := s.run(); err != nil && !errors.Is(err, io.EOF) {
		log.Fatal(err)
	}
}

type session struct {
	board *model.Board
	human model.Color
	bot   bot.Selector
	in    *bufio.Scanner
	out   io.Writer
}

func (s *session) run() error {
	for !model.IsTerminal(s.board) {
		fmt.Fprint(s.out, notation.Render(s.board))
		fmt.Fprintf(s.out, "%s's turn\n", s.board.Turn())

		if s.board.Turn() == s.human {
			if err := s.humanTurn(); err != nil {
				return err
			}
			continue
		}
		move, ok := s.bot.ChooseMove(s.board)
		if !ok {
			break
		}
		record, err := model.Apply(s.board, move.From, move.To)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Bot moved: %s\n", notation.FormatRecord(record))
	}

	fmt.Fprint(s.out, notation.Render(s.board))
	fmt.Fprintln(s.out, "Game over!")
	if s.board.Turn() == s.human {
		fmt.Fprintln(s.out, "You have no moves left. You lose!")
	} else {
		fmt.Fprintln(s.out, "The bot has no moves left. You win!")
	}
	return nil
}

// humanTurn reads lines until a move is played or an undo succeeds.
func (s *session) humanTurn() error {
	for {
		fmt.Fprint(s.out, "Enter your move (e.g., e2 e4), 'undo' or 'fen': ")
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		line := strings.TrimSpace(s.in.Text())

		if strings.EqualFold(line, "undo") {
			// take back the bot's reply and our previous move
			if s.board.MoveCount() < 2 {
				fmt.Fprintln(s.out, "Cannot undo further.")
				continue
			}
			model.Undo(s.board)
			model.Undo(s.board)
			fmt.Fprintln(s.out, "Move undone.")
			return nil
		}

		if strings.EqualFold(line, "fen") {
			fmt.Fprintln(s.out, notation.Placement(s.board))
			continue
		}

		move, err := notation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please use the format 'e2 e4'.")
			continue
		}
		if _, err := model.Apply(s.board, move.From, move.To); err != nil {
			fmt.Fprintln(s.out, "Invalid move. Try again.")
			continue
		}
		return nil
	}
}
