package followerwatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IssueNotifier opens issues on a GitHub repository. It is the write half
// of the tracker: when a run detects follower changes in CI and issue
// creation is opted in, the formatted diff is posted here.
type IssueNotifier struct {
	// Repository is the repository to open issues on, in owner/repo format.
	Repository string

	token      string
	apiBaseURL string
	client     *http.Client
	log        *zap.SugaredLogger
}

// IssueRef identifies an issue created by CreateIssue.
type IssueRef struct {
	Number int    `json:"number"`
	URL    string `json:"html_url"`
}

// NewIssueNotifier returns a notifier that opens issues on repo using token.
func NewIssueNotifier(repo, token string, options ...func(*IssueNotifier)) (*IssueNotifier, error) {
	if repo == "" {
		return nil, errors.New("repository must be specified")
	}
	if token == "" {
		return nil, errors.New("token must be specified")
	}
	n := &IssueNotifier{
		Repository: repo,
		token:      token,
		apiBaseURL: githubAPIBaseURL,
		client:     initHTTPClient(defaultHTTPTimeout),
		log:        zap.NewNop().Sugar(),
	}
	for _, o := range options {
		o(n)
	}
	return n, nil
}

// WithIssueLogger sets the *zap.SugaredLogger the notifier uses internally.
func WithIssueLogger(logger *zap.SugaredLogger) func(*IssueNotifier) {
	return func(n *IssueNotifier) {
		n.log = logger
	}
}

// WithIssueBaseURL overrides the GitHub API base URL.
func WithIssueBaseURL(baseURL string) func(*IssueNotifier) {
	return func(n *IssueNotifier) {
		n.apiBaseURL = baseURL
	}
}

// CreateIssue opens an issue with the given title and body and returns a
// reference to it. A non-2xx response is a TransportError.
func (n *IssueNotifier) CreateIssue(title, body string) (*IssueRef, error) {
	payload := struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{
		Title: title,
		Body:  body,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding issue payload")
	}

	endpoint := fmt.Sprintf("%s/repos/%s/issues", n.apiBaseURL, n.Repository)
	req, err := http.NewRequest("POST", endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrapf(err, "error building request: %s", endpoint)
	}
	req.Header.Add("Accept", "application/vnd.github+json")
	req.Header.Add("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Add("User-Agent", githubUserAgent)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+n.token)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error reaching GitHub API: %s", endpoint)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var ref IssueRef
	if err := decodeResponse(resp.Body, &ref); err != nil {
		return nil, errors.Wrap(err, "issue creation response")
	}
	n.log.Infow("opened issue",
		"repo", n.Repository,
		"number", ref.Number,
		"url", ref.URL)
	return &ref, nil
}
