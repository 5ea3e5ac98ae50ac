package session

import (
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/mgpai22/lyricsync/internal/logging"
	"github.com/mgpai22/lyricsync/internal/lrc"
	"github.com/mgpai22/lyricsync/internal/lyrics"
	"github.com/mgpai22/lyricsync/internal/playback"
)

var (
	ErrNoAudio          = errors.New("no audio loaded")
	ErrNothingToExport  = errors.New("sync at least one lyric line to enable export")
	ErrNoUnsyncedLines  = errors.New("every line already has a timestamp")
	ErrExportOverwrites = errors.New("export would overwrite the loaded lyrics file; give an explicit path")
)

// one editing session: the document, the sources it came from, and values
// typed into rows that have not been written yet
type Session struct {
	doc    *lyrics.Document
	clock  *playback.Clock
	logger *logging.Logger

	audioName    string
	lyricsSource string
	tags         []lrc.Tag

	pending map[lyrics.LineID]lyrics.Edit
}

func New(logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		doc:     lyrics.NewDocument(),
		clock:   playback.NewClock(0),
		logger:  logger,
		pending: make(map[lyrics.LineID]lyrics.Edit),
	}
}

// switches to a new audio track. Loading the current track again is a no-op;
// a different track discards lyrics, timestamps and staged edits.
func (s *Session) LoadAudio(name string, duration time.Duration) bool {
	if name == s.audioName {
		return false
	}

	s.audioName = name
	s.clock = playback.NewClock(duration)
	s.reset()
	s.seed()

	s.logger.Debugw("Audio loaded",
		"audio", name,
		"duration", duration.String(),
	)
	return true
}

// replaces the lyrics with plain text from source; same source twice is a no-op
func (s *Session) LoadLyricsText(source, raw string) bool {
	if source != "" && source == s.lyricsSource {
		return false
	}

	s.reset()
	s.lyricsSource = source
	s.doc.LoadFromText(raw)
	s.seed()

	s.logger.Debugw("Lyrics loaded",
		"source", source,
		"lines", s.doc.Len(),
	)
	return true
}

// replaces the lyrics with a parsed file, keeping its timestamps and tags
func (s *Session) LoadLyricsFile(source string, file *lrc.File) bool {
	if source != "" && source == s.lyricsSource {
		return false
	}

	s.reset()
	s.lyricsSource = source
	s.tags = file.Tags
	s.doc.Replace(file.Lines)
	s.seed()

	s.logger.Debugw("Lyrics loaded",
		"source", source,
		"lines", s.doc.Len(),
		"tags", len(file.Tags),
	)
	return true
}

func (s *Session) reset() {
	s.doc = lyrics.NewDocument()
	s.lyricsSource = ""
	s.tags = nil
	s.pending = make(map[lyrics.LineID]lyrics.Edit)
}

// with a track loaded there is always at least one row to type into
func (s *Session) seed() {
	if s.audioName != "" && s.doc.Len() == 0 {
		_, _ = s.doc.InsertLine(0, "", "")
	}
}

func (s *Session) AudioName() string {
	return s.audioName
}

func (s *Session) LyricsSource() string {
	return s.lyricsSource
}

func (s *Session) Clock() *playback.Clock {
	return s.clock
}

func (s *Session) Lines() []lyrics.Line {
	return s.doc.GetLines()
}

// staged edit for a line, if any
func (s *Session) Pending(id lyrics.LineID) (lyrics.Edit, bool) {
	e, ok := s.pending[id]
	return e, ok
}

// records text typed into row index without writing it
func (s *Session) StageText(index int, text string) error {
	line, err := s.doc.Line(index)
	if err != nil {
		return err
	}
	e := s.pending[line.ID]
	e.ID = line.ID
	e.Text = &text
	s.pending[line.ID] = e
	return nil
}

// records a timestamp typed into row index without writing it
func (s *Session) StageTimestamp(index int, timestamp string) error {
	line, err := s.doc.Line(index)
	if err != nil {
		return err
	}
	e := s.pending[line.ID]
	e.ID = line.ID
	e.Timestamp = &timestamp
	s.pending[line.ID] = e
	return nil
}

// writes all staged edits to the document
func (s *Session) Flush() error {
	if err := s.doc.ApplyEdits(s.takePending()...); err != nil {
		return err
	}
	s.clearPending()
	return nil
}

// stamps row index with the current playback position and returns the
// written timestamp
func (s *Session) Capture(index int) (string, error) {
	if s.audioName == "" {
		return "", ErrNoAudio
	}

	position := s.clock.Position()
	if err := s.doc.CaptureTimestamp(index, position, s.takePending()...); err != nil {
		return "", err
	}
	s.clearPending()

	line, _ := s.doc.Line(index)
	s.logger.Debugw("Captured timestamp",
		"row", index+1,
		"position", position,
		"timestamp", line.Timestamp,
	)
	return line.Timestamp, nil
}

// first row without a timestamp, counting staged values
func (s *Session) NextUnsynced() (int, error) {
	for i, l := range s.doc.GetLines() {
		ts := l.Timestamp
		if e, ok := s.pending[l.ID]; ok && e.Timestamp != nil {
			ts = *e.Timestamp
		}
		if ts == "" {
			return i, nil
		}
	}
	return -1, ErrNoUnsyncedLines
}

func (s *Session) Insert(index int, text string) (lyrics.LineID, error) {
	id, err := s.doc.InsertLine(index, text, "", s.takePending()...)
	if err != nil {
		return 0, err
	}
	s.clearPending()
	return id, nil
}

func (s *Session) Append(text string) (lyrics.LineID, error) {
	return s.Insert(s.doc.Len(), text)
}

func (s *Session) Delete(index int) error {
	if err := s.doc.DeleteLine(index, s.takePending()...); err != nil {
		return err
	}
	s.clearPending()
	return nil
}

// writes staged edits into the document, then reports whether export is available
func (s *Session) FlushExportable() (bool, error) {
	if err := s.Flush(); err != nil {
		return false, err
	}
	return lrc.Exportable(s.doc.GetLines()), nil
}

// LRC body of the current document
func (s *Session) Export() (string, error) {
	ok, err := s.FlushExportable()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNothingToExport
	}
	return lrc.Export(s.doc.GetLines()), nil
}

// writes the export to path, or to the name suggested by the audio file
// when path is empty. The suggested name is refused when it is the lyrics
// file the session was loaded from. Returns the path used and the number of
// lines written.
func (s *Session) WriteExport(path string) (string, int, error) {
	ok, err := s.FlushExportable()
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return "", 0, ErrNothingToExport
	}

	if path == "" {
		path = s.SuggestedFileName()
		if samePath(path, s.lyricsSource) {
			return "", 0, ErrExportOverwrites
		}
	}

	n, err := lrc.NewWriter(s.tags...).Write(s.doc.GetLines(), path)
	if err != nil {
		return "", 0, err
	}

	s.logger.Infow("Exported lyrics",
		"output", path,
		"lines", n,
	)
	return path, n, nil
}

func (s *Session) SuggestedFileName() string {
	return lrc.SuggestedFileName(s.audioName)
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// staged edits in ID order so application is deterministic
func (s *Session) takePending() []lyrics.Edit {
	if len(s.pending) == 0 {
		return nil
	}
	edits := make([]lyrics.Edit, 0, len(s.pending))
	for _, e := range s.pending {
		edits = append(edits, e)
	}
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].ID < edits[j].ID
	})
	return edits
}

func (s *Session) clearPending() {
	if len(s.pending) > 0 {
		s.pending = make(map[lyrics.LineID]lyrics.Edit)
	}
}
