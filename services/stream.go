package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidContentType    = errors.New("invalid content type")
	ErrSeasonEpisodeRequired = errors.New("season and episode required for TV shows")
)

const streamHost = "https://rivestream.org"

type StreamLinks struct {
	EmbedURL    string `json:"embed_url"`
	TorrentURL  string `json:"torrent_url"`
	AggURL      string `json:"agg_url"`
	DownloadURL string `json:"download_url"`
}

// ResolveStreamLinks builds the four player URLs for a title by template
// substitution against the fixed streaming host. TV links require both
// season and episode.
func ResolveStreamLinks(contentType string, tmdbID int, season, episode *int) (*StreamLinks, error) {
	var suffix string
	switch contentType {
	case "movie":
		suffix = fmt.Sprintf("type=movie&id=%d", tmdbID)
	case "tv":
		if season == nil || episode == nil {
			return nil, ErrSeasonEpisodeRequired
		}
		suffix = fmt.Sprintf("type=tv&id=%d&season=%d&episode=%d", tmdbID, *season, *episode)
	default:
		return nil, ErrInvalidContentType
	}

	return &StreamLinks{
		EmbedURL:    streamHost + "/embed?" + suffix,
		TorrentURL:  streamHost + "/embed/torrent?" + suffix,
		AggURL:      streamHost + "/embed/agg?" + suffix,
		DownloadURL: streamHost + "/download?" + suffix,
	}, nil
}
