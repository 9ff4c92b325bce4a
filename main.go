// gomoku-local is a terminal application to play Gomoku against a local search engine.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gomoku-local/config"
	"gomoku-local/engine"
	"gomoku-local/engine/local"
	"gomoku-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameStatus *tview.TextView
var cfg *config.Config

func main() {
	opts := parseFlags(os.Args[1:])

	if opts.version {
		fmt.Printf("gomoku-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	console := opts.plain || opts.serve != ""
	logFile, err := setupLogging(cfg, console)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	switch {
	case opts.serve != "":
		err = runServer(opts.serve, gameConfig(cfg))
	case opts.plain:
		err = runPlain(os.Stdin, os.Stdout, gameConfig(cfg))
	default:
		err = runTUI(opts)
	}
	if err != nil {
		log.Error().Err(err).Msg("exit")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging points the global logger at stderr for console modes and at the
// debug file while the terminal UI owns the screen.
func setupLogging(c *config.Config, console bool) (io.Closer, error) {
	zerolog.SetGlobalLevel(c.LogLevel())
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return nil, nil
	}
	f, err := os.Create(c.LogPath())
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

func gameConfig(c *config.Config) engine.GameConfig {
	return engine.GameConfig{
		PlayerColor:  c.Engine.PlayerColor,
		SearchDepth:  c.Engine.SearchDepth,
		Radius:       c.Engine.Radius,
		Workers:      c.Engine.Workers,
		CacheStripes: c.Engine.CacheStripes,
	}
}

func runTUI(opts options) error {
	quickStart := opts.play || opts.focus || opts.color != ""

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● gomoku ")

	gameStatus = tview.NewTextView()
	gameStatus.SetBorder(true)
	gameStatus.SetBorderPadding(0, 0, 1, 1)
	gameStatus.SetTitle(" Status ")
	gameStatus.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameStatus)

	gameFrame = tview.NewFlex()
	ui.RebuildNormalLayout(gameFrame, gameBoard, gameStatus)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(selTile.X, selTile.Y)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'u':
				gameBoard.Undo()
			case '?':
				gameBoard.ShowHint()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameStatus)
				}
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(
		gameConfig(cfg),
		startGame,
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(gameConfig(cfg))
		if opts.focus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	defer gameBoard.Close()
	return app.SetRoot(rootPage, true).Run()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()

	eng := local.New(gameCfg)
	if err := gameBoard.ConnectEngine(eng, gameCfg); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	ui.RebuildNormalLayout(gameFrame, gameBoard, gameStatus)
	rootPage.SwitchToPage("gameview")
}
