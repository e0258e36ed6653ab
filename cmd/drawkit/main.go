// Package main is the headless command-line driver for the editor core:
// it reads JSON action lines from stdin, feeds them through the tool
// router, and prints the final document as JSON on exit.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/drawkit/drawkit/internal/app"
	"github.com/drawkit/drawkit/internal/geom"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/persist"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		watchConfig bool
		logLevel    string
		boardID     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to the settings file")
	flag.BoolVar(&watchConfig, "watch-config", false, "reload the settings file on change")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	flag.StringVar(&boardID, "board", "default", "board id for persistence")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("drawkit", version)
		return 0
	}

	log := app.NewLogger(app.LoggerConfig{Level: app.ParseLogLevel(logLevel)})
	sink := persist.NewWriterSink(os.Stderr)

	editor, err := app.New(
		app.WithLogger(log),
		app.WithConfigPath(configPath, watchConfig),
		app.WithSink(sink),
		app.WithBoardID(boardID),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := editor.Shutdown(); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	if err := drive(editor, log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(editor.State().Doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// actionLine is one JSON line of scripted input.
type actionLine struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Key   string  `json:"key"`
	Tool  string  `json:"tool"`
	Shift bool    `json:"shift"`
	Alt   bool    `json:"alt"`
	Ctrl  bool    `json:"ctrl"`
	Meta  bool    `json:"meta"`
}

func drive(editor *app.App, log *app.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var line actionLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := apply(editor, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	log.Debug("processed %d action lines", lineNo)
	return nil
}

func apply(editor *app.App, line actionLine) error {
	mod := input.Modifiers{Ctrl: line.Ctrl, Shift: line.Shift, Alt: line.Alt, Meta: line.Meta}
	p := input.Pointer{
		World:  geom.Pt(line.X, line.Y),
		Screen: geom.Pt(line.X, line.Y),
		Mod:    mod,
		Time:   time.Now(),
	}
	switch line.Type {
	case "pointer-down":
		editor.HandleAction(input.PointerDown{Pointer: p})
	case "pointer-move":
		editor.HandleAction(input.PointerMove{Pointer: p})
	case "pointer-up":
		editor.HandleAction(input.PointerUp{Pointer: p})
	case "key-down":
		editor.HandleAction(input.KeyDown{Key: line.Key, Mod: mod})
	case "tool":
		if err := editor.SwitchTool(line.Tool); err != nil {
			return err
		}
	case "undo":
		editor.Undo()
	case "redo":
		editor.Redo()
	default:
		return fmt.Errorf("unknown action type %q", line.Type)
	}
	return nil
}
