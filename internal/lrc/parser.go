package lrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mgpai22/lyricsync/internal/lyrics"
)

// ID tag such as [ar:Artist] or [offset:+250]
type Tag struct {
	Key   string
	Value string
}

// parsed lyrics source: header tags plus lines in file order
type File struct {
	Tags  []Tag
	Lines []lyrics.Line
}

var (
	tagRegex  = regexp.MustCompile(`^\[([A-Za-z]+):([^\]]*)\]$`)
	timeRegex = regexp.MustCompile(`^\[(\d{1,3}):(\d{2})(?:[.:](\d{1,3}))?\]`)
)

// reads LRC content. A line with several leading time tags becomes one line
// per tag; text without any tag is kept as an unsynced line.
func Parse(r io.Reader) (*File, error) {
	file := &File{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if matches := tagRegex.FindStringSubmatch(line); matches != nil {
			file.Tags = append(file.Tags, Tag{
				Key:   strings.ToLower(matches[1]),
				Value: strings.TrimSpace(matches[2]),
			})
			continue
		}

		var stamps []string
		rest := line
		for {
			matches := timeRegex.FindStringSubmatch(rest)
			if matches == nil {
				break
			}
			stamp := matches[1] + ":" + matches[2]
			if matches[3] != "" {
				stamp += "." + matches[3]
			}
			stamps = append(stamps, stamp)
			rest = rest[len(matches[0]):]
		}

		if len(stamps) == 0 {
			file.Lines = append(file.Lines, lyrics.Line{Text: line})
			continue
		}

		text := strings.TrimSpace(rest)
		for _, stamp := range stamps {
			file.Lines = append(file.Lines, lyrics.Line{
				Text:      text,
				Timestamp: stamp,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading LRC content: %w", err)
	}

	return file, nil
}

// value of the first tag with key, if any
func (f *File) Tag(key string) (string, bool) {
	for _, t := range f.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// LRC text with header tags followed by the exported lines
func (f *File) Render() string {
	var sb strings.Builder
	for _, t := range f.Tags {
		sb.WriteString(fmt.Sprintf("[%s:%s]\n", t.Key, t.Value))
	}
	sb.WriteString(Export(f.Lines))
	return sb.String()
}

// reads a lyrics source from disk. .lrc files keep their timestamps,
// anything else is treated as plain text, one lyric per line.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), Extension) {
		file, err := Parse(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return file, nil
	}

	file := &File{}
	for _, text := range lyrics.SplitLines(string(data)) {
		file.Lines = append(file.Lines, lyrics.Line{Text: text})
	}
	return file, nil
}
