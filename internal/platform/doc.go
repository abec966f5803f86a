// Package platform contains OS integration and external tooling glue:
// the yt-dlp backend that resolves and downloads streams, the playlist API
// and HTML scraper used when a URL is not a single video, filesystem
// helpers, and OS open/reveal/restart.
package platform
