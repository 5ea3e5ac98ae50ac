package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgpai22/lyricsync/internal/lrc"
	"github.com/mgpai22/lyricsync/internal/lyrics"
)

const helpText = `Commands (rows are numbered from 1):
  list                 show all rows
  play | pause         start or stop the playback clock
  seek <seconds>       move the playback clock
  pos                  show the playback position
  set [n]              stamp row n (default: first unsynced row) with the playback position
  text <n> <text>      type lyric text into row n
  time <n> <mm:ss.ms>  type a timestamp into row n
  clear <n>            clear the timestamp of row n
  add [text]           append a row
  insert <n> [text]    insert a row before row n
  del <n>              delete row n
  load <file>          load lyrics from a .txt or .lrc file
  check                report rows that are out of order or will not export
  export [path]        write the .lrc file
  quit                 leave the session
`

type styles struct {
	header  lipgloss.Style
	synced  lipgloss.Style
	invalid lipgloss.Style
	missing lipgloss.Style
	staged  lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		header:  r.NewStyle().Bold(true),
		synced:  r.NewStyle().Foreground(lipgloss.Color("42")),
		invalid: r.NewStyle().Foreground(lipgloss.Color("196")),
		missing: r.NewStyle().Faint(true),
		staged:  r.NewStyle().Foreground(lipgloss.Color("214")),
		info:    r.NewStyle().Foreground(lipgloss.Color("62")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// line-oriented editor over a session; it is the render surface
type Shell struct {
	session    *Session
	out        io.Writer
	outputPath string
	styles     styles
}

// outputPath overrides the suggested export name when set
func NewShell(s *Session, out io.Writer, outputPath string) *Shell {
	return &Shell{
		session:    s,
		out:        out,
		outputPath: outputPath,
		styles:     newStyles(out),
	}
}

// reads commands from in until quit, EOF or ctx is done
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	sh.printf("%s\n", sh.styles.info.Render("Type 'help' for commands."))
	sh.renderLines()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.printf("> ")
		if !scanner.Scan() {
			sh.printf("\n")
			return scanner.Err()
		}

		quit, err := sh.Execute(scanner.Text())
		if err != nil {
			sh.printf("%s\n", sh.styles.err.Render("error: "+err.Error()))
		}
		if quit {
			return nil
		}
	}
}

// runs one command line; reports whether the session should end
func (sh *Shell) Execute(line string) (bool, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		sh.printf("%s", helpText)
	case "list", "ls":
		sh.renderLines()
	case "play":
		sh.session.Clock().Play()
		sh.printPosition()
	case "pause":
		sh.session.Clock().Pause()
		sh.printPosition()
	case "pos":
		sh.printPosition()
	case "seek":
		return false, sh.seek(rest)
	case "set":
		return false, sh.capture(rest)
	case "text":
		return false, sh.stage(rest, sh.session.StageText)
	case "time":
		return false, sh.stage(rest, sh.session.StageTimestamp)
	case "clear":
		index, _, err := parseRow(rest)
		if err != nil {
			return false, err
		}
		return false, sh.session.StageTimestamp(index, "")
	case "add":
		if _, err := sh.session.Append(rest); err != nil {
			return false, err
		}
		sh.renderLines()
	case "insert":
		index, text, err := parseRow(rest)
		if err != nil {
			return false, err
		}
		if _, err := sh.session.Insert(index, text); err != nil {
			return false, err
		}
		sh.renderLines()
	case "del", "delete":
		index, _, err := parseRow(rest)
		if err != nil {
			return false, err
		}
		if err := sh.session.Delete(index); err != nil {
			return false, err
		}
		sh.renderLines()
	case "load":
		return false, sh.load(rest)
	case "check":
		return false, sh.check()
	case "export":
		return false, sh.export(rest)
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}

	return false, nil
}

func (sh *Shell) seek(arg string) error {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("seek needs a position in seconds, got %q", arg)
	}
	if err := sh.session.Clock().Seek(seconds); err != nil {
		return err
	}
	sh.printPosition()
	return nil
}

func (sh *Shell) capture(arg string) error {
	var index int
	var err error
	if arg == "" {
		index, err = sh.session.NextUnsynced()
	} else {
		index, _, err = parseRow(arg)
	}
	if err != nil {
		return err
	}

	ts, err := sh.session.Capture(index)
	if err != nil {
		return err
	}

	line := sh.session.Lines()[index]
	sh.printf("%3d  %s  %s\n", index+1, sh.styles.synced.Render(ts), line.Text)
	return nil
}

func (sh *Shell) stage(arg string, set func(int, string) error) error {
	index, value, err := parseRow(arg)
	if err != nil {
		return err
	}
	return set(index, value)
}

func (sh *Shell) load(path string) error {
	if path == "" {
		return fmt.Errorf("load needs a file path")
	}

	var loaded bool
	if strings.EqualFold(filepath.Ext(path), lrc.Extension) {
		file, err := lrc.Open(path)
		if err != nil {
			return err
		}
		loaded = sh.session.LoadLyricsFile(path, file)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read lyrics file: %w", err)
		}
		loaded = sh.session.LoadLyricsText(path, string(data))
	}

	if !loaded {
		sh.printf("%s\n", sh.styles.info.Render(path+" is already loaded"))
		return nil
	}
	sh.renderLines()
	return nil
}

func (sh *Shell) check() error {
	if err := sh.session.Flush(); err != nil {
		return err
	}
	lines := sh.session.Lines()

	problems := 0
	for _, i := range lyrics.Malformed(lines) {
		problems++
		sh.printf("row %d: timestamp %q is not mm:ss[.fff] and will not be exported\n",
			i+1, lines[i].Timestamp)
	}
	for _, w := range lyrics.NonMonotonic(lines) {
		problems++
		sh.printf("row %d: %s is earlier than row %d (%s)\n",
			w.Index+1, lines[w.Index].Timestamp, w.Previous+1, lines[w.Previous].Timestamp)
	}

	if problems == 0 {
		sh.printf("%s\n", sh.styles.info.Render("no problems found"))
	}
	return nil
}

func (sh *Shell) export(arg string) error {
	path := arg
	if path == "" {
		path = sh.outputPath
	}

	written, n, err := sh.session.WriteExport(path)
	if errors.Is(err, ErrNothingToExport) {
		sh.printf("%s\n", sh.styles.info.Render(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	abs, _ := filepath.Abs(written)
	sh.printf("Exported %d lines to %s\n", n, abs)
	return nil
}

func (sh *Shell) renderLines() {
	if sh.session.AudioName() == "" {
		sh.printf("%s\n", sh.styles.info.Render("Load an audio file to begin syncing lyrics."))
		return
	}

	lines := sh.session.Lines()
	sh.printf("%s\n", sh.styles.header.Render(
		fmt.Sprintf("%s  (%d rows)", sh.session.AudioName(), len(lines)),
	))

	for i, l := range lines {
		text, ts := l.Text, l.Timestamp
		marker := " "
		if e, ok := sh.session.Pending(l.ID); ok {
			marker = sh.styles.staged.Render("*")
			if e.Text != nil {
				text = *e.Text
			}
			if e.Timestamp != nil {
				ts = *e.Timestamp
			}
		}

		var tsCell string
		switch {
		case ts == "":
			tsCell = sh.styles.missing.Render(fmt.Sprintf("%-9s", "--:--.---"))
		case lyrics.IsValidTimestamp(ts):
			tsCell = sh.styles.synced.Render(fmt.Sprintf("%-9s", ts))
		default:
			tsCell = sh.styles.invalid.Render(fmt.Sprintf("%-9s", ts))
		}

		sh.printf("%3d%s %s  %s\n", i+1, marker, tsCell, text)
	}
}

func (sh *Shell) printPosition() {
	clock := sh.session.Clock()
	ts, _ := lyrics.FormatSample(clock.Position())
	state := "paused"
	if clock.Playing() {
		state = "playing"
	}
	sh.printf("%s %s\n", sh.styles.info.Render(ts), state)
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// splits "<row> [value]" into a zero-based index and the remaining text
func parseRow(arg string) (int, string, error) {
	first, rest, _ := strings.Cut(strings.TrimSpace(arg), " ")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, "", fmt.Errorf("expected a row number, got %q", first)
	}
	return n - 1, strings.TrimSpace(rest), nil
}
