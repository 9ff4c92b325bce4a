package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"gomoku-local/engine"
	"gomoku-local/gomoku"
	"gomoku-local/search"
	"gomoku-local/types"
)

// runPlain plays one game on a line-oriented terminal: the board is printed
// after every move and moves are read as coordinates such as J10.
func runPlain(in io.Reader, out io.Writer, gameCfg engine.GameConfig) error {
	human := types.Side(gameCfg.PlayerColor)
	game, err := gomoku.New(gomoku.Options{
		Computer: human.Opponent(),
		Depth:    gameCfg.SearchDepth,
		Search: search.Options{
			Radius:       gameCfg.Radius,
			Workers:      gameCfg.Workers,
			CacheStripes: gameCfg.CacheStripes,
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "You play %s. Enter moves like J10, or undo, hint, quit.\n", human)
	scanner := bufio.NewScanner(in)
	for {
		if game.ToMove() == game.Computer() {
			st, err := computerTurn(out, game)
			if err != nil {
				return err
			}
			if st.Over() {
				fmt.Fprintf(out, "%s\n%v wins.\n", game, st.Winner)
				return nil
			}
		}

		fmt.Fprintf(out, "%s\n%s> ", game, human)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "undo":
			if err := undoPair(game, human); err != nil {
				fmt.Fprintln(out, err)
			}
			continue
		case "hint":
			p, err := game.Hint(human, game.Depth())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Hint: %v\n", p)
			continue
		}

		p, err := types.ParsePosition(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		st, err := game.ApplyMove(p, human)
		if errors.Is(err, gomoku.ErrInvalidMove) {
			fmt.Fprintln(out, err)
			continue
		}
		if err != nil {
			return err
		}
		if st.Over() {
			fmt.Fprintf(out, "%s\n%v wins.\n", game, st.Winner)
			return nil
		}
	}
}

func computerTurn(out io.Writer, game *gomoku.Game) (gomoku.GameState, error) {
	start := time.Now()
	p, st, err := game.ChooseComputerMove(game.Depth())
	if err != nil {
		return st, err
	}
	fmt.Fprintf(out, "%v plays %v (%v)\n", game.Computer(), p, time.Since(start).Round(time.Millisecond))
	return st, nil
}

// undoPair takes back moves until it is the human's turn again.
func undoPair(game *gomoku.Game, human types.Side) error {
	if err := game.Undo(); err != nil {
		return err
	}
	if game.ToMove() != human {
		return game.Undo()
	}
	return nil
}
