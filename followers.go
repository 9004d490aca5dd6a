package followerwatch

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FollowerRecord is one follower as reported by the GitHub API. Every
// other field the API returns is discarded at decode time. Records are
// never mutated after they have been fetched.
type FollowerRecord struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	AvatarURL  string `json:"avatar_url"`
	ProfileURL string `json:"html_url"`
}

const (
	githubAPIBaseURL = "https://api.github.com"
	githubAPIVersion = "2022-11-28"
	githubUserAgent  = "follower-watch"

	// followersPageSize is the fixed per_page value. Pages are requested
	// sequentially until the API returns an empty page.
	followersPageSize = 100
)

// Lister fetches the complete follower list of a GitHub user.
type Lister struct {
	token      string
	apiBaseURL string
	client     *http.Client
	log        *zap.SugaredLogger
}

// NewLister returns a Lister that authenticates with token. An empty token
// sends unauthenticated requests, which GitHub rate-limits aggressively.
func NewLister(token string, options ...func(*Lister)) *Lister {
	l := &Lister{
		token:      token,
		apiBaseURL: githubAPIBaseURL,
		client:     initHTTPClient(defaultHTTPTimeout),
		log:        zap.NewNop().Sugar(),
	}
	for _, o := range options {
		o(l)
	}
	return l
}

// WithListerLogger is an option that can be passed to NewLister to set the
// *zap.SugaredLogger the Lister will use internally. Without it, a no-op
// log is used.
func WithListerLogger(logger *zap.SugaredLogger) func(*Lister) {
	return func(l *Lister) {
		l.log = logger
	}
}

// WithListerBaseURL overrides the GitHub API base URL.
func WithListerBaseURL(baseURL string) func(*Lister) {
	return func(l *Lister) {
		l.apiBaseURL = baseURL
	}
}

// FetchAll retrieves every follower of login, requesting pages of
// followersPageSize sequentially starting at page 1 and stopping when the
// API returns an empty page. Any non-2xx page response aborts the whole
// fetch with a TransportError; there is no retry and no partial result.
func (l *Lister) FetchAll(login string) ([]FollowerRecord, error) {
	if login == "" {
		return nil, errors.New("login must be specified")
	}
	var all []FollowerRecord
	for page := 1; ; page++ {
		records, err := l.fetchPage(login, page)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
		l.log.Debugw("fetched follower page",
			"login", login,
			"page", page,
			"page_size", len(records))
	}
	l.log.Infow("fetched followers", "login", login, "count", len(all))
	return all, nil
}

func (l *Lister) fetchPage(login string, page int) ([]FollowerRecord, error) {
	endpoint := fmt.Sprintf("%s/users/%s/followers?per_page=%d&page=%d",
		l.apiBaseURL, login, followersPageSize, page)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error building request: %s", endpoint)
	}
	req.Header.Add("Accept", "application/vnd.github+json")
	req.Header.Add("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Add("User-Agent", githubUserAgent)
	if l.token != "" {
		req.Header.Add("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error reaching GitHub API: %s", endpoint)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var records []FollowerRecord
	if err := decodeResponse(resp.Body, &records); err != nil {
		return nil, err
	}
	return records, nil
}
