package usecase

import (
	"context"
	"strings"
	"testing"

	authdomain "moviebot-backend/internal/auth/domain"
	chatdomain "moviebot-backend/internal/chat/domain"
	"moviebot-backend/pkg/normalize"
	"moviebot-backend/pkg/tmdb"
)

// ---- in-memory stores and gateway fakes ----

type memStore struct {
	messages []*chatdomain.Message
	recs     []chatdomain.Recommendation
}

func (s *memStore) Create(msg *chatdomain.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func (s *memStore) FindByUserID(userID string) ([]*chatdomain.Message, error) {
	var out []*chatdomain.Message
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memLedger struct {
	recs []chatdomain.Recommendation
}

func (l *memLedger) Create(rec *chatdomain.Recommendation) error {
	l.recs = append(l.recs, *rec)
	return nil
}

func (l *memLedger) RecommendedIDs(userID string) (map[int]struct{}, error) {
	set := make(map[int]struct{})
	for _, r := range l.recs {
		if r.UserID == userID {
			set[r.MovieID] = struct{}{}
		}
	}
	return set, nil
}

func (l *memLedger) Titles(userID string) ([]string, error) {
	var titles []string
	for _, r := range l.recs {
		if r.UserID == userID {
			titles = append(titles, r.MovieTitle)
		}
	}
	return titles, nil
}

type memChatRepo struct{}

func (memChatRepo) ClearChat(string) error { return nil }

// fakeGateway returns canned results and records which lookups ran.
type fakeGateway struct {
	streaming  tmdb.StreamingResult
	rating     tmdb.RatingResult
	similar    tmdb.SimilarResult
	trailer    tmdb.TrailerResult
	nowPlaying tmdb.MovieListResult
	discover   tmdb.MovieListResult

	calls []string
	// arguments observed
	ratingArg   string
	discoverID  int
	streamingRg string
}

func (g *fakeGateway) StreamingPlatforms(movieName, region string) tmdb.StreamingResult {
	g.calls = append(g.calls, "streaming:"+movieName)
	g.streamingRg = region
	return g.streaming
}

func (g *fakeGateway) MovieRating(movieName string) tmdb.RatingResult {
	g.calls = append(g.calls, "rating:"+movieName)
	g.ratingArg = movieName
	return g.rating
}

func (g *fakeGateway) SimilarMovies(movieName string) tmdb.SimilarResult {
	g.calls = append(g.calls, "similar:"+movieName)
	return g.similar
}

func (g *fakeGateway) MovieTrailer(movieName string) tmdb.TrailerResult {
	g.calls = append(g.calls, "trailer:"+movieName)
	return g.trailer
}

func (g *fakeGateway) NowPlaying(limit int, region, language string) tmdb.MovieListResult {
	g.calls = append(g.calls, "nowplaying")
	return g.nowPlaying
}

func (g *fakeGateway) DiscoverByGenre(genreID, limit int, region, language string) tmdb.MovieListResult {
	g.calls = append(g.calls, "discover")
	g.discoverID = genreID
	return g.discover
}

func (g *fakeGateway) Popular(limit int, region, language string, page int) []tmdb.Banner {
	return nil
}

func (g *fakeGateway) CarouselBanners(limit int, region, language string, page int) []tmdb.Banner {
	return nil
}

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
	called bool
}

func (f *fakeCompleter) ChatCompletion(_ context.Context, systemPrompt, _ string) (string, error) {
	f.called = true
	f.prompt = systemPrompt
	return f.reply, f.err
}

func newTestUsecase(g *fakeGateway, c *fakeCompleter) (ChatUsecase, *memStore, *memLedger) {
	msgs := &memStore{}
	ledger := &memLedger{}
	uc := NewChatUsecase(msgs, ledger, memChatRepo{}, g, c, "US", "es")
	return uc, msgs, ledger
}

func testUser() *authdomain.User {
	return &authdomain.User{ID: "u1", Email: "ana@example.com", Region: "US"}
}

func send(t *testing.T, uc ChatUsecase, msg string) string {
	t.Helper()
	reply, err := uc.HandleMessage(context.Background(), testUser(), msg)
	if err != nil {
		t.Fatalf("HandleMessage(%q): %v", msg, err)
	}
	return reply
}

// ---- rule tests ----

func TestStreamingIntent(t *testing.T) {
	g := &fakeGateway{streaming: tmdb.StreamingResult{
		MovieID:   1,
		Platforms: []tmdb.Platform{{Name: "Netflix"}, {Name: "Max"}},
	}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	reply := send(t, uc, "¿Dónde puedo ver Inception?")

	if !strings.Contains(reply, "Netflix") || !strings.Contains(reply, "Max") {
		t.Errorf("reply should list providers, got %q", reply)
	}
	if g.calls[0] != "streaming:inception" {
		t.Errorf("expected extraction of %q, got %v", "inception", g.calls)
	}
	if g.streamingRg != "US" {
		t.Errorf("expected user region US, got %q", g.streamingRg)
	}
}

func TestStreamingSentinelSurfacedVerbatim(t *testing.T) {
	g := &fakeGateway{streaming: tmdb.StreamingResult{
		Status: tmdb.Status{Err: "No se encontró la película 'xyzzy' en TMDB."},
	}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	reply := send(t, uc, "donde puedo ver xyzzy")
	if reply != "No se encontró la película 'xyzzy' en TMDB." {
		t.Errorf("sentinel must be the reply verbatim, got %q", reply)
	}
}

func TestRatingIntentPhrases(t *testing.T) {
	phrases := []string{
		"¿Qué evaluación tiene Matrix?",
		"que puntuacion tiene Matrix",
		"oye que rating tiene Matrix",
	}
	for _, msg := range phrases {
		t.Run(msg, func(t *testing.T) {
			g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 603, Rating: 8.2}}
			uc, _, _ := newTestUsecase(g, &fakeCompleter{})

			reply := send(t, uc, msg)
			if g.ratingArg != "matrix" {
				t.Errorf("expected argument %q, got %q", "matrix", g.ratingArg)
			}
			if !strings.Contains(reply, "8.2") {
				t.Errorf("reply should state the rating, got %q", reply)
			}
		})
	}
}

func TestRatingPhrasePriorityGovernsExtraction(t *testing.T) {
	// Both trigger phrases present: the first in declared order decides the
	// extraction offset.
	g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 1, Rating: 7}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	send(t, uc, "que evaluacion tiene o que rating tiene Dune")
	if g.ratingArg != "o que rating tiene dune" {
		t.Errorf("extraction should follow the first declared phrase, got %q", g.ratingArg)
	}
}

func TestRatingLookupsAreNeverRegistered(t *testing.T) {
	g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 603, Rating: 8.2}}
	uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

	send(t, uc, "que rating tiene matrix")
	if len(ledger.recs) != 0 {
		t.Errorf("informational lookups must not register recommendations, got %d", len(ledger.recs))
	}
}

func TestFirstMatchWins(t *testing.T) {
	// "parecida a" is declared before "estrenos"; a message containing both
	// must route to the similar-movies rule.
	g := &fakeGateway{similar: tmdb.SimilarResult{
		Recommendations: []tmdb.SimilarMovie{{ID: 1, Title: "Tenet", ReleaseDate: "2020-08-26"}},
	}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	send(t, uc, "alguna parecida a los estrenos de inception")

	for _, call := range g.calls {
		if call == "nowplaying" {
			t.Fatal("now-playing must not run when an earlier rule matched")
		}
	}
	if len(g.calls) == 0 || !strings.HasPrefix(g.calls[0], "similar:") {
		t.Errorf("expected similar-movies lookup, got %v", g.calls)
	}
}

func TestSimilarIntent(t *testing.T) {
	similar := []tmdb.SimilarMovie{
		{ID: 1, Title: "A", ReleaseDate: "2020-01-01"},
		{ID: 2, Title: "B", ReleaseDate: "2020-02-01"},
		{ID: 3, Title: "C", ReleaseDate: "2020-03-01"},
		{ID: 4, Title: "D", ReleaseDate: "2020-04-01"},
		{ID: 5, Title: "E", ReleaseDate: "2020-05-01"},
		{ID: 6, Title: "F", ReleaseDate: "2020-06-01"},
		{ID: 7, Title: "G", ReleaseDate: "2020-07-01"},
	}

	t.Run("lists all fresh candidates but registers at most five", func(t *testing.T) {
		g := &fakeGateway{similar: tmdb.SimilarResult{Recommendations: similar}}
		uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

		reply := send(t, uc, "una parecida a inception")
		for _, m := range similar {
			if !strings.Contains(reply, m.Title+" (estrenada el "+m.ReleaseDate+")") {
				t.Errorf("reply missing %s", m.Title)
			}
		}
		if len(ledger.recs) != 5 {
			t.Errorf("expected 5 registrations, got %d", len(ledger.recs))
		}
	})

	t.Run("fully exhausted batch yields none-left reply and zero registrations", func(t *testing.T) {
		g := &fakeGateway{similar: tmdb.SimilarResult{Recommendations: similar}}
		uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

		// Pre-fill the ledger with every candidate.
		for _, m := range similar {
			ledger.recs = append(ledger.recs, chatdomain.Recommendation{
				UserID: "u1", MovieID: m.ID, MovieTitle: m.Title,
			})
		}
		before := len(ledger.recs)

		reply := send(t, uc, "una parecida a inception")
		if !strings.Contains(reply, "No hay más similares a 'inception'") {
			t.Errorf("unexpected reply %q", reply)
		}
		if len(ledger.recs) != before {
			t.Errorf("exhausted batch must register nothing, got %d new", len(ledger.recs)-before)
		}
	})
}

func TestTrailerIntent(t *testing.T) {
	g := &fakeGateway{trailer: tmdb.TrailerResult{TrailerURL: "https://www.youtube.com/watch?v=abc"}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	reply := send(t, uc, "¿me muestras el trailer de Dune?")
	if !strings.Contains(reply, "https://www.youtube.com/watch?v=abc") {
		t.Errorf("reply should embed the trailer url, got %q", reply)
	}
	if g.calls[0] != "trailer:dune" {
		t.Errorf("expected trailer lookup for dune, got %v", g.calls)
	}
}

func TestRecommendIntent(t *testing.T) {
	t.Run("genre keyword routes to discover", func(t *testing.T) {
		g := &fakeGateway{discover: tmdb.MovieListResult{Movies: []tmdb.Movie{
			{ID: 10, Title: "Alien", ReleaseDate: "1979-05-25"},
		}}}
		uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

		reply := send(t, uc, "recomiéndame algo de terror")
		if g.discoverID != 27 {
			t.Errorf("expected terror genre id 27, got %d", g.discoverID)
		}
		if !strings.Contains(reply, "terror") || !strings.Contains(reply, "Alien") {
			t.Errorf("unexpected reply %q", reply)
		}
		if len(ledger.recs) != 1 || ledger.recs[0].MovieID != 10 {
			t.Errorf("expected Alien registered, got %+v", ledger.recs)
		}
	})

	t.Run("generic ask routes to now playing", func(t *testing.T) {
		for _, msg := range []string{
			"me recomiendas algo",
			"recomiendame una pelicula",
			"recomiendame algo reciente",
			"me recomiendas",
		} {
			g := &fakeGateway{nowPlaying: tmdb.MovieListResult{Movies: []tmdb.Movie{
				{ID: 20, Title: "Nueva", ReleaseDate: "2024-06-01"},
			}}}
			uc, _, _ := newTestUsecase(g, &fakeCompleter{})

			send(t, uc, msg)
			found := false
			for _, call := range g.calls {
				if call == "nowplaying" {
					found = true
				}
			}
			if !found {
				t.Errorf("%q should route to now-playing, calls %v", msg, g.calls)
			}
		}
	})

	t.Run("literal title yields rating and no registration", func(t *testing.T) {
		g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 603, Rating: 8.2}}
		uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

		reply := send(t, uc, "me recomiendas matrix")
		if g.ratingArg != "matrix" {
			t.Errorf("expected literal title lookup, got %q", g.ratingArg)
		}
		if !strings.Contains(reply, "¿Te gustaría saber algo más?") {
			t.Errorf("literal flow should invite a follow-up, got %q", reply)
		}
		if len(ledger.recs) != 0 {
			t.Errorf("literal flow must not register, got %d", len(ledger.recs))
		}
	})
}

func TestNowPlayingIntent(t *testing.T) {
	g := &fakeGateway{nowPlaying: tmdb.MovieListResult{Movies: []tmdb.Movie{
		{ID: 30, Title: "Estreno Uno", ReleaseDate: "2024-07-01"},
		{ID: 31, Title: "Estreno Dos", ReleaseDate: "2024-07-08"},
	}}}
	uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

	reply := send(t, uc, "cuales son los estrenos")
	if !strings.Contains(reply, "Estreno Uno") || !strings.Contains(reply, "Estreno Dos") {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(ledger.recs) != 2 {
		t.Errorf("expected both registered, got %d", len(ledger.recs))
	}
}

func TestDedupAcrossTurns(t *testing.T) {
	// End-to-end: a terror fan asks twice; the second turn must re-read the
	// ledger and come up empty-handed.
	movies := []tmdb.Movie{
		{ID: 100, Title: "It", ReleaseDate: "2017-09-08"},
		{ID: 101, Title: "The Ring", ReleaseDate: "2002-10-18"},
	}
	g := &fakeGateway{discover: tmdb.MovieListResult{Movies: movies}}
	uc, msgs, ledger := newTestUsecase(g, &fakeCompleter{})

	first := send(t, uc, "recomiendame algo de terror")
	if !strings.Contains(first, "It") || !strings.Contains(first, "The Ring") {
		t.Fatalf("first reply should list both, got %q", first)
	}
	if len(ledger.recs) != 2 {
		t.Fatalf("expected 2 registrations after first turn, got %d", len(ledger.recs))
	}

	second := send(t, uc, "recomiendame algo de terror")
	if !strings.Contains(second, "ya te las recomendé") {
		t.Errorf("second turn should say everything was already suggested, got %q", second)
	}
	if len(ledger.recs) != 2 {
		t.Errorf("second turn must register nothing, got %d", len(ledger.recs))
	}

	transcript, _ := msgs.FindByUserID("u1")
	if len(transcript) != 4 {
		t.Errorf("expected 4 persisted messages (2 turns), got %d", len(transcript))
	}
}

func TestWithinTurnDedup(t *testing.T) {
	// The same movie id appearing twice in one batch registers only once.
	g := &fakeGateway{nowPlaying: tmdb.MovieListResult{Movies: []tmdb.Movie{
		{ID: 40, Title: "Doble", ReleaseDate: "2024-01-01"},
		{ID: 40, Title: "Doble", ReleaseDate: "2024-01-01"},
	}}}
	uc, _, ledger := newTestUsecase(g, &fakeCompleter{})

	send(t, uc, "estrenos")
	if len(ledger.recs) != 1 {
		t.Errorf("duplicate ids within a batch must register once, got %d", len(ledger.recs))
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	uc, msgs, _ := newTestUsecase(&fakeGateway{}, &fakeCompleter{})

	_, err := uc.HandleMessage(context.Background(), testUser(), "   ")
	if err != ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(msgs.messages) != 0 {
		t.Errorf("nothing may be persisted for an empty message, got %d", len(msgs.messages))
	}
}

func TestTurnPersistsBothMessages(t *testing.T) {
	g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 1, Rating: 9}}
	uc, msgs, _ := newTestUsecase(g, &fakeCompleter{})

	reply := send(t, uc, "que rating tiene dune")

	if len(msgs.messages) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(msgs.messages))
	}
	if msgs.messages[0].Author != chatdomain.AuthorUser || msgs.messages[0].Content != "que rating tiene dune" {
		t.Errorf("first message should be the raw user message, got %+v", msgs.messages[0])
	}
	if msgs.messages[1].Author != chatdomain.AuthorAssistant || msgs.messages[1].Content != reply {
		t.Errorf("second message should be the reply, got %+v", msgs.messages[1])
	}
}

func TestNormalizedRoutingMatchesCleanedText(t *testing.T) {
	// Sanity check that routing operates on normalized text: accents and
	// punctuation in the trigger do not break matching.
	if normalize.Clean("¿Qué EVALUACIÓN tiene Matrix?") != "que evaluacion tiene matrix" {
		t.Fatal("normalizer contract changed")
	}
	g := &fakeGateway{rating: tmdb.RatingResult{MovieID: 1, Rating: 8}}
	uc, _, _ := newTestUsecase(g, &fakeCompleter{})

	send(t, uc, "¿Qué EVALUACIÓN tiene Matrix?")
	if g.ratingArg != "matrix" {
		t.Errorf("expected matrix, got %q", g.ratingArg)
	}
}
