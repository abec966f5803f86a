package locate

import (
	"context"
	"errors"
	"strings"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/model"
	"github.com/ytget/yt-dl/internal/platform"
)

// User facing messages
const (
	MsgNoURL    = "No URL given. Enter a URL to continue."
	MsgNotFound = "Could not find any video or playlist at this URL."
)

// Attempt is the state shared by the strategies of one Locate call.
type Attempt struct {
	// Input is the trimmed URL as the user typed it.
	Input string
	// PageURL is the URL playlist strategies fetch. The scheme strategy
	// replaces it with the prefixed URL when that one identified a playlist.
	PageURL string
	// Playlist is set once a resolver reported that the URL is not a single video.
	Playlist bool
	// Structural is set when the last resolve failed because the URL could
	// not be used at all.
	Structural bool
	// Errors lists every failure in strategy order.
	Errors []error
}

func (a *Attempt) record(err error) {
	a.Errors = append(a.Errors, err)
}

// lastErr returns the most recent recorded failure
func (a *Attempt) lastErr() error {
	if len(a.Errors) == 0 {
		return nil
	}
	return a.Errors[len(a.Errors)-1]
}

// Strategy is one step of the locate chain. Returning an Unresolved
// location passes the attempt on to the next strategy.
type Strategy interface {
	Name() string
	Locate(ctx context.Context, a *Attempt) model.Location
}

// Locator runs strategies in order until one resolves the URL
type Locator struct {
	strategies []Strategy
}

// New creates a locator with the default chain: direct resolve, https
// retry, playlist API and playlist page scrape. lister may be nil.
func New(resolver platform.Resolver, lister platform.PlaylistLister, scraper Scraper) *Locator {
	strategies := []Strategy{
		&Direct{Resolver: resolver},
		&SchemeRetry{Resolver: resolver},
	}
	if lister != nil {
		strategies = append(strategies, &PlaylistAPI{Lister: lister})
	}
	if scraper != nil {
		strategies = append(strategies, &PlaylistScrape{Scraper: scraper})
	}
	return NewWithStrategies(strategies...)
}

// NewWithStrategies creates a locator with an explicit chain
func NewWithStrategies(strategies ...Strategy) *Locator {
	return &Locator{strategies: strategies}
}

// Locate resolves rawURL. It fails with apperr.InvalidInput for a blank URL
// and apperr.NotFound when no strategy produced a result.
func (l *Locator) Locate(ctx context.Context, rawURL string) (model.Location, error) {
	input := strings.TrimSpace(rawURL)
	if input == "" {
		return model.Location{}, apperr.New(apperr.InvalidInput, "locate", MsgNoURL)
	}

	a := &Attempt{Input: input, PageURL: input}
	for _, s := range l.strategies {
		if err := ctx.Err(); err != nil {
			return model.Location{}, err
		}
		loc := s.Locate(ctx, a)
		if loc.Resolved() {
			loc.Source = s.Name()
			logger.Infof("Located %s via %s: %s", loc.Kind, s.Name(), input)
			return loc, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return model.Location{}, err
	}
	return model.Location{}, notFound(a)
}

// notFound builds the final error. When every failure was a network failure
// the cause is kept so the user sees that the page could not be reached.
func notFound(a *Attempt) error {
	cause := a.lastErr()
	if cause == nil {
		return apperr.New(apperr.NotFound, "locate", MsgNotFound)
	}
	for _, err := range a.Errors {
		if !isNetworkFailure(err) {
			return apperr.Wrap(apperr.NotFound, "locate", MsgNotFound, cause)
		}
	}
	return apperr.Wrap(apperr.NotFound, "locate", MsgNotFound,
		apperr.Wrap(apperr.NetworkFailure, "locate", "the page could not be reached", cause))
}

func isNetworkFailure(err error) bool {
	return errors.Is(err, platform.ErrUnreachable) || apperr.IsKind(err, apperr.NetworkFailure)
}

// hasScheme reports whether u starts with an URL scheme such as "https://"
func hasScheme(u string) bool {
	i := strings.Index(u, "://")
	if i <= 0 {
		return false
	}
	for _, c := range u[:i] {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}
