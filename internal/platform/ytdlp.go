package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-dl/internal/model"
)

// Progress reporting interval for yt-dlp downloads
const (
	DefaultProgressInterval = 500 * time.Millisecond
)

// Placeholder used for titles that sanitize to nothing
const (
	DefaultFileTitle = "video"
)

// YTDLP resolves and downloads videos through the yt-dlp executable.
type YTDLP struct {
	progressInterval time.Duration
}

// NewYTDLP creates a yt-dlp backend
func NewYTDLP() *YTDLP {
	return &YTDLP{progressInterval: DefaultProgressInterval}
}

// InstallYTDLP makes sure a yt-dlp executable is available, downloading it
// into the user cache when it is missing from PATH.
func InstallYTDLP(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// Resolve asks yt-dlp for the metadata of url and returns its progressive
// streams, highest resolution first.
func (y *YTDLP) Resolve(ctx context.Context, url string) (*model.Video, error) {
	res, err := ytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		FlatPlaylist().
		NoPlaylist().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w: %v", url, classifyOutput(errorOutput(res, err)), err)
	}
	return parseVideoJSON([]byte(res.Stdout), url)
}

// Download fetches stream into dir using the stream's default filename.
func (y *YTDLP) Download(ctx context.Context, stream model.Stream, dir string, progress func(Progress)) (string, error) {
	filename := stream.DefaultFilename
	if filename == "" {
		filename = DefaultFileTitle + "." + stream.Format
	}
	outputPath := filepath.Join(dir, filename)

	dl := ytdlp.New().
		Format(stream.FormatID).
		NoPlaylist().
		ForceOverwrites().
		Output(escapeOutputTemplate(outputPath))

	if progress != nil {
		dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
			p := Progress{
				DownloadedBytes: int64(update.DownloadedBytes),
				TotalBytes:      int64(update.TotalBytes),
			}
			if eta := update.ETA(); eta > 0 {
				p.ETASec = int(eta.Seconds())
			}
			if !update.Started.IsZero() {
				if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
					p.Speed = fmt.Sprintf("%.1fMB/s", float64(update.DownloadedBytes)/elapsed/1024/1024)
				}
			}
			progress(p)
		})
	}

	res, err := dl.Run(ctx, stream.VideoURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w: %v", stream.VideoURL, classifyOutput(errorOutput(res, err)), err)
	}
	return outputPath, nil
}

// errorOutput joins what yt-dlp printed with the error text
func errorOutput(res *ytdlp.Result, err error) string {
	var b strings.Builder
	if err != nil {
		b.WriteString(err.Error())
	}
	if res != nil {
		b.WriteString("\n")
		b.WriteString(res.Stderr)
	}
	return b.String()
}

type ytdlpInfo struct {
	Type       string        `json:"_type"`
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	WebpageURL string        `json:"webpage_url"`
	Formats    []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Height         *float64 `json:"height"`
	FPS            *float64 `json:"fps"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
	VCodec         string   `json:"vcodec"`
	ACodec         string   `json:"acodec"`
}

// parseVideoJSON converts yt-dlp's single JSON document into a Video.
// Playlist documents yield ErrNotAVideo.
func parseVideoJSON(data []byte, pageURL string) (*model.Video, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	if info.Type == "playlist" || info.Type == "multi_video" {
		return nil, fmt.Errorf("%s is a %s: %w", pageURL, info.Type, ErrNotAVideo)
	}

	videoURL := info.WebpageURL
	if videoURL == "" {
		videoURL = pageURL
	}

	video := &model.Video{
		ID:    info.ID,
		Title: info.Title,
		URL:   videoURL,
	}

	for _, f := range info.Formats {
		if !isProgressive(f) {
			continue
		}
		height := intValue(f.Height)
		fps := intValue(f.FPS)
		size := int64(intValue(f.Filesize))
		if size == 0 {
			size = int64(intValue(f.FilesizeApprox))
		}
		video.Streams = append(video.Streams, model.Stream{
			VideoURL:        videoURL,
			FormatID:        f.FormatID,
			Format:          normalizeExt(f.Ext),
			Resolution:      model.ResolutionName(height, fps),
			Height:          height,
			FPS:             fps,
			Filesize:        size,
			DefaultFilename: SafeFilename(info.Title) + "." + f.Ext,
			Progressive:     true,
		})
	}
	model.SortStreams(video.Streams)

	if len(video.Streams) == 0 {
		return nil, fmt.Errorf("%s has no progressive streams: %w", pageURL, ErrUnavailable)
	}
	return video, nil
}

func isProgressive(f ytdlpFormat) bool {
	return f.VCodec != "" && f.VCodec != "none" && f.ACodec != "" && f.ACodec != "none"
}

func intValue(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// normalizeExt maps yt-dlp extensions onto the container names the UI uses
func normalizeExt(ext string) string {
	if ext == "3gp" {
		return "3gpp"
	}
	return ext
}

// SafeFilename strips characters that are invalid in file names on any of
// the supported platforms.
func SafeFilename(title string) string {
	replacer := strings.NewReplacer(
		"/", "", "\\", "", ":", "", "*", "", "?", "",
		"\"", "", "<", "", ">", "", "|", "", "\x00", "",
		"\n", " ", "\r", " ", "\t", " ",
	)
	name := strings.TrimSpace(replacer.Replace(title))
	name = strings.Trim(name, ".")
	if name == "" {
		return DefaultFileTitle
	}
	return name
}

// escapeOutputTemplate protects literal percent signs from yt-dlp's template expansion
func escapeOutputTemplate(path string) string {
	return strings.ReplaceAll(path, "%", "%%")
}
