package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"popflix/models"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// Catalog proxies the TMDB API: popular movies/TV and multi search.
type Catalog struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewCatalog(apiKey string) *Catalog {
	return &Catalog{
		apiKey:  apiKey,
		baseURL: tmdbBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type tmdbItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`          // Movies
	Name         string  `json:"name"`           // TV
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`   // Movies
	FirstAirDate string  `json:"first_air_date"` // TV
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	Adult        bool    `json:"adult"`
}

type tmdbPage struct {
	Results []tmdbItem `json:"results"`
}

func (i tmdbItem) toMovie() models.Movie {
	return models.Movie{
		TMDBID:       i.ID,
		Title:        i.Title,
		Overview:     i.Overview,
		PosterPath:   i.PosterPath,
		BackdropPath: i.BackdropPath,
		ReleaseDate:  i.ReleaseDate,
		VoteAverage:  i.VoteAverage,
		GenreIDs:     i.GenreIDs,
		Adult:        i.Adult,
	}
}

func (i tmdbItem) toTVShow() models.TVShow {
	return models.TVShow{
		TMDBID:       i.ID,
		Name:         i.Name,
		Overview:     i.Overview,
		PosterPath:   i.PosterPath,
		BackdropPath: i.BackdropPath,
		FirstAirDate: i.FirstAirDate,
		VoteAverage:  i.VoteAverage,
		GenreIDs:     i.GenreIDs,
	}
}

func (c *Catalog) PopularMovies(ctx context.Context) ([]models.Movie, error) {
	page, err := c.fetch(ctx, "/movie/popular", nil)
	if err != nil {
		return nil, err
	}
	movies := []models.Movie{}
	for _, item := range page.Results {
		movies = append(movies, item.toMovie())
	}
	return movies, nil
}

func (c *Catalog) PopularTV(ctx context.Context) ([]models.TVShow, error) {
	page, err := c.fetch(ctx, "/tv/popular", nil)
	if err != nil {
		return nil, err
	}
	shows := []models.TVShow{}
	for _, item := range page.Results {
		shows = append(shows, item.toTVShow())
	}
	return shows, nil
}

// SearchItem tags each multi-search hit with its media type; results that
// are neither movies nor TV (people, for instance) are dropped.
type SearchItem struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (c *Catalog) Search(ctx context.Context, query string) ([]SearchItem, error) {
	page, err := c.fetch(ctx, "/search/multi", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}

	results := []SearchItem{}
	for _, item := range page.Results {
		switch item.MediaType {
		case "movie":
			results = append(results, SearchItem{Type: "movie", Data: item.toMovie()})
		case "tv":
			results = append(results, SearchItem{Type: "tv", Data: item.toTVShow()})
		}
	}
	return results, nil
}

func (c *Catalog) fetch(ctx context.Context, endpoint string, params url.Values) (*tmdbPage, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	q.Set("page", "1")
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb returned %d", ErrUpstreamFailure, resp.StatusCode)
	}

	var page tmdbPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return &page, nil
}
