package audio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// what the sync session needs to know about the track
type Info struct {
	Path     string
	Name     string
	Duration time.Duration
	Codec    string
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// probes an audio file with ffprobe
func Probe(path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbeOutput([]byte(raw))
	if err != nil {
		return nil, err
	}
	info.Path = path
	info.Name = filepath.Base(path)
	return info, nil
}

func parseProbeOutput(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	hasAudio := false
	info := &Info{}
	for _, s := range probe.Streams {
		if s.CodecType == "audio" {
			hasAudio = true
			info.Codec = s.CodecName
			break
		}
	}
	if len(probe.Streams) > 0 && !hasAudio {
		return nil, fmt.Errorf("no audio stream found")
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration: %w", err)
	}
	info.Duration = time.Duration(seconds * float64(time.Second))

	return info, nil
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".ogg":  true,
		".flac": true,
		".aac":  true,
		".m4a":  true,
		".opus": true,
		".wma":  true,
		".aiff": true,
	}
	return audioExts[ext]
}
