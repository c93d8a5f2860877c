// Package tmdb wraps the TMDB v3 API for the chat assistant. Lookups never
// return Go errors to callers: every failure mode is folded into the Status
// sentinels so the chat layer can surface the message directly.
package tmdb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const imageBaseURL = "https://image.tmdb.org/t/p/w500"
const defaultBannerImage = "/static/images/default_banner.jpg"

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- raw TMDB response shapes (internal, not exposed to consumers) ----

type searchMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	Backdrop    string  `json:"backdrop_path"`
}

type searchResponse struct {
	Results []searchMovie `json:"results"`
}

type providersResponse struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderID   int    `json:"provider_id"`
			ProviderName string `json:"provider_name"`
			LogoPath     string `json:"logo_path"`
		} `json:"flatrate"`
	} `json:"results"`
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// ---- lookups ----

// StreamingPlatforms resolves a movie title and returns the flatrate
// streaming providers available in the given region.
func (c *Client) StreamingPlatforms(movieName, region string) StreamingResult {
	movie, status := c.searchBestMatch(movieName, url.Values{"region": {region}},
		fmt.Sprintf("No se encontró la película '%s' en TMDB.", movieName))
	if status.Failed() {
		return StreamingResult{Status: status}
	}

	var resp providersResponse
	if errStatus := c.get(fmt.Sprintf("/movie/%d/watch/providers", movie.ID), nil, &resp,
		"Error al obtener información de streaming"); errStatus.Failed() {
		return StreamingResult{Status: errStatus}
	}

	flatrate := resp.Results[region].Flatrate
	if len(flatrate) == 0 {
		return StreamingResult{Status: Status{Notice: fmt.Sprintf(
			"No se encontró información de streaming para '%s' en la región %s.", movieName, region)}}
	}

	platforms := make([]Platform, 0, len(flatrate))
	for _, p := range flatrate {
		platforms = append(platforms, Platform{ID: p.ProviderID, Name: p.ProviderName, Logo: p.LogoPath})
	}
	return StreamingResult{MovieID: movie.ID, Platforms: platforms}
}

// MovieRating resolves a movie title to its TMDB id and average score.
func (c *Client) MovieRating(movieName string) RatingResult {
	movie, status := c.searchBestMatch(movieName, nil,
		fmt.Sprintf("No se encontró la película '%s'.", movieName))
	if status.Failed() {
		return RatingResult{Status: status}
	}
	return RatingResult{MovieID: movie.ID, Rating: movie.VoteAverage}
}

// SimilarMovies resolves a movie title and lists TMDB's similar movies.
func (c *Client) SimilarMovies(movieName string) SimilarResult {
	movie, status := c.searchBestMatch(movieName, url.Values{"language": {"en"}},
		fmt.Sprintf("No se encontró la película '%s'.", movieName))
	if status.Failed() {
		return SimilarResult{Status: status}
	}

	var resp searchResponse
	if errStatus := c.get(fmt.Sprintf("/movie/%d/similar", movie.ID),
		url.Values{"language": {"en"}}, &resp, "Error al obtener recomendaciones"); errStatus.Failed() {
		return SimilarResult{Status: errStatus}
	}

	if len(resp.Results) == 0 {
		return SimilarResult{Status: Status{Notice: fmt.Sprintf(
			"No se encontraron recomendaciones para '%s'.", movieName)}}
	}

	recs := make([]SimilarMovie, 0, len(resp.Results))
	for _, m := range resp.Results {
		recs = append(recs, SimilarMovie{
			ID:          m.ID,
			Title:       orDefault(m.Title, "Sin título"),
			ReleaseDate: orDefault(m.ReleaseDate, "Fecha desconocida"),
		})
	}
	return SimilarResult{MovieID: movie.ID, Recommendations: recs}
}

// MovieTrailer resolves a movie title and returns its first YouTube trailer.
func (c *Client) MovieTrailer(movieName string) TrailerResult {
	movie, status := c.searchBestMatch(movieName, url.Values{"language": {"es"}},
		fmt.Sprintf("No se encontró la película '%s'.", movieName))
	if status.Failed() {
		return TrailerResult{Status: status}
	}

	var resp videosResponse
	if errStatus := c.get(fmt.Sprintf("/movie/%d/videos", movie.ID),
		url.Values{"language": {"es"}}, &resp, "Error al obtener los videos de la película"); errStatus.Failed() {
		return TrailerResult{Status: errStatus}
	}

	if len(resp.Results) == 0 {
		return TrailerResult{Status: Status{Notice: "No hay tráiler disponible para esta película."}}
	}

	for _, v := range resp.Results {
		if strings.EqualFold(v.Type, "trailer") && strings.EqualFold(v.Site, "youtube") {
			return TrailerResult{TrailerURL: "https://www.youtube.com/watch?v=" + v.Key}
		}
	}
	return TrailerResult{Status: Status{Notice: "No se encontró un tráiler de YouTube para esta película."}}
}

// NowPlaying lists movies currently in theaters.
func (c *Client) NowPlaying(limit int, region, language string) MovieListResult {
	var resp searchResponse
	if errStatus := c.get("/movie/now_playing", url.Values{
		"language": {language},
		"region":   {region},
		"page":     {"1"},
	}, &resp, "Error al conectar con TMDB"); errStatus.Failed() {
		return MovieListResult{Status: errStatus}
	}

	if len(resp.Results) == 0 {
		return MovieListResult{Status: Status{Notice: "No hay películas recientes en cartelera disponibles."}}
	}
	return MovieListResult{Movies: collectMovies(resp.Results, limit)}
}

// DiscoverByGenre lists popular movies for one TMDB genre id.
func (c *Client) DiscoverByGenre(genreID, limit int, region, language string) MovieListResult {
	var resp searchResponse
	if errStatus := c.get("/discover/movie", url.Values{
		"language":    {language},
		"region":      {region},
		"sort_by":     {"popularity.desc"},
		"with_genres": {fmt.Sprintf("%d", genreID)},
		"page":        {"1"},
	}, &resp, "Error al obtener películas por género"); errStatus.Failed() {
		return MovieListResult{Status: errStatus}
	}

	if len(resp.Results) == 0 {
		return MovieListResult{Status: Status{Notice: "No se encontraron películas para este género en este momento."}}
	}
	return MovieListResult{Movies: collectMovies(resp.Results, limit)}
}

// Popular returns landing-page banners built from the popular listing. Unlike
// the chat lookups this degrades to an empty slice on any failure; the landing
// page renders without banners rather than showing an error.
func (c *Client) Popular(limit int, region, language string, page int) []Banner {
	return c.popularBanners(limit, region, language, page, false)
}

// CarouselBanners is the carousel variant of Popular: same source, trimmed
// descriptions, normally requested on a different page to avoid repeating the
// banner movies.
func (c *Client) CarouselBanners(limit int, region, language string, page int) []Banner {
	return c.popularBanners(limit, region, language, page, true)
}

func (c *Client) popularBanners(limit int, region, language string, page int, short bool) []Banner {
	var resp searchResponse
	if errStatus := c.get("/movie/popular", url.Values{
		"language": {language},
		"region":   {region},
		"page":     {fmt.Sprintf("%d", page)},
	}, &resp, "Error al conectar con TMDB"); errStatus.Failed() {
		slog.Error("popular movies lookup failed", "reason", errStatus.Reply())
		return []Banner{}
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}

	banners := make([]Banner, 0, len(results))
	for _, m := range results {
		desc := orDefault(m.Overview, "Sin descripción disponible.")
		if short {
			if r := []rune(desc); len(r) > 150 {
				desc = string(r[:150])
			}
		}
		banners = append(banners, Banner{
			ID:          m.ID,
			Title:       orDefault(m.Title, "Sin título"),
			Description: desc,
			ImageURL:    bannerImage(m.Backdrop),
		})
	}
	return banners
}

// ---- plumbing ----

// searchBestMatch runs /search/movie and picks the highest-rated hit, which
// tracks what users mean better than TMDB's own result order.
func (c *Client) searchBestMatch(movieName string, extra url.Values, notFound string) (searchMovie, Status) {
	params := url.Values{"query": {movieName}}
	for k, vs := range extra {
		params[k] = vs
	}

	var resp searchResponse
	if errStatus := c.get("/search/movie", params, &resp, "Error al conectar con TMDB"); errStatus.Failed() {
		return searchMovie{}, errStatus
	}

	if len(resp.Results) == 0 {
		return searchMovie{}, Status{Err: notFound}
	}

	best := resp.Results[0]
	for _, m := range resp.Results[1:] {
		if m.VoteAverage > best.VoteAverage {
			best = m
		}
	}
	return best, Status{}
}

// get performs one API call and decodes the body, converting every transport
// failure into an Err sentinel built from failurePrefix.
func (c *Client) get(path string, params url.Values, out interface{}, failurePrefix string) Status {
	if c.apiKey == "" {
		return Status{Err: "No se ha configurado la clave de TMDB (TMDB_API_KEY)."}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + params.Encode()

	resp, err := c.http.Get(fullURL)
	if err != nil {
		slog.Error("TMDB request failed", "path", path, "error", err)
		return Status{Err: failurePrefix + "."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("TMDB returned unexpected status", "path", path, "status", resp.StatusCode)
		return Status{Err: fmt.Sprintf("%s (status code: %d).", failurePrefix, resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Error("failed to decode TMDB response", "path", path, "error", err)
		return Status{Err: failurePrefix + "."}
	}
	return Status{}
}

func collectMovies(results []searchMovie, limit int) []Movie {
	if len(results) > limit {
		results = results[:limit]
	}
	movies := make([]Movie, 0, len(results))
	for _, m := range results {
		movies = append(movies, Movie{
			ID:          m.ID,
			Title:       orDefault(m.Title, "Título desconocido"),
			ReleaseDate: orDefault(m.ReleaseDate, "Fecha desconocida"),
			Overview:    orDefault(m.Overview, "Sin descripción disponible."),
			ImageURL:    bannerImage(m.Backdrop),
		})
	}
	return movies
}

func bannerImage(backdropPath string) string {
	if backdropPath == "" {
		return defaultBannerImage
	}
	return imageBaseURL + backdropPath
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
