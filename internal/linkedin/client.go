package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.linkedin.com/v2"
	apiVersion     = "202304"
	protocolVer    = "2.0.0"

	// Total attempts per publish call, backoff starts at 500ms and doubles
	maxRetries    = 2
	retryWaitTime = 500 * time.Millisecond
	retryMaxWait  = 2 * time.Second
)

// transientStatuses are retried with backoff inside the client
var transientStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// ClientConfig configures a LinkedIn client
type ClientConfig struct {
	AccessToken string
	BaseURL     string // defaults to the LinkedIn v2 API
	Timeout     time.Duration
	Debug       bool
}

// Client publishes text posts through the LinkedIn UGC API
type Client struct {
	accessToken string
	debug       bool
	client      *resty.Client
	authorURN   string
}

type userInfoResponse struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

type postEnvelope struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      visibilityBlock `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

type visibilityBlock struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// NewClient creates a LinkedIn client and validates the access token against
// the userinfo endpoint. A rejected token fails construction with *AuthError;
// this is not a transient condition and is never retried.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	restyClient := resty.New().
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && transientStatuses[r.StatusCode()]
		})

	c := &Client{
		accessToken: cfg.AccessToken,
		debug:       cfg.Debug,
		client:      restyClient,
	}

	if err := c.validateToken(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization":             "Bearer " + c.accessToken,
		"Content-Type":              "application/json",
		"X-Restli-Protocol-Version": protocolVer,
		"LinkedIn-Version":          apiVersion,
	}
}

// validateToken checks the token against the userinfo endpoint and derives
// the posting-author URN from the subject identifier
func (c *Client) validateToken() error {
	resp, err := c.client.R().
		SetHeaders(c.headers()).
		Get("/userinfo")

	if err != nil || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		detail := ""
		if err != nil {
			detail = err.Error()
		} else {
			detail = fmt.Sprintf("userinfo returned status %d", resp.StatusCode())
		}
		msg := fmt.Sprintf("token validation failed: %s. "+
			"Please ensure: (1) your access token is valid and not expired, "+
			"(2) you have the required scopes (openid, profile, w_member_social), "+
			"(3) your application is properly configured in the LinkedIn Developer Portal", detail)
		logrus.Error(msg)
		return &AuthError{Message: msg}
	}

	var info userInfoResponse
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		msg := fmt.Sprintf("token validation failed: could not parse userinfo response: %v", err)
		logrus.Error(msg)
		return &AuthError{Message: msg}
	}

	if info.Sub == "" {
		msg := "token validation failed: userinfo response missing subject identifier"
		logrus.Error(msg)
		return &AuthError{Message: msg}
	}

	c.authorURN = fmt.Sprintf("urn:li:person:%s", info.Sub)
	logrus.Info("Successfully validated LinkedIn access token")

	if c.debug {
		logrus.Debugf("User info: %s", string(resp.Body()))
	}

	return nil
}

// AuthorURN returns the posting-author identifier derived at construction
func (c *Client) AuthorURN() string {
	return c.authorURN
}

// ParseVisibility maps a caller-supplied string onto the enumerated set
func ParseVisibility(value string) (models.Visibility, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(models.VisibilityPublic):
		return models.VisibilityPublic, nil
	case string(models.VisibilityConnections):
		return models.VisibilityConnections, nil
	default:
		return "", &InvalidArgumentError{
			Message: fmt.Sprintf("invalid visibility %q, must be one of: PUBLIC, CONNECTIONS", value),
		}
	}
}

// CreateTextPost publishes a text-only post. Transient statuses (429, 500,
// 502, 503, 504) are retried with backoff up to 3 attempts total; any other
// failure, or a success response without a post identifier, returns
// *PublishError.
func (c *Client) CreateTextPost(ctx context.Context, text string, visibility models.Visibility) (*models.PostResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Message: "post text cannot be empty"}
	}

	vis, err := ParseVisibility(string(visibility))
	if err != nil {
		return nil, err
	}

	envelope := postEnvelope{
		Author:         c.authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    shareCommentary{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: visibilityBlock{MemberNetworkVisibility: string(vis)},
	}

	logrus.Info("Creating LinkedIn text post")
	if c.debug {
		body, _ := json.Marshal(envelope)
		logrus.Debugf("Post envelope: %s", string(body))
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeaders(c.headers()).
		SetBody(envelope).
		Post("/ugcPosts")

	if err != nil {
		return nil, &PublishError{Message: fmt.Sprintf("request failed: %v", err)}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if c.debug {
			logrus.Debugf("Publish response body: %s", string(resp.Body()))
		}
		return nil, &PublishError{
			Message:    fmt.Sprintf("post creation failed: %s", string(resp.Body())),
			StatusCode: resp.StatusCode(),
		}
	}

	postID := resp.Header().Get("x-restli-id")
	if postID == "" {
		return nil, &PublishError{Message: "no post ID received in response"}
	}

	logrus.Infof("Successfully created post with ID: %s", postID)

	return &models.PostResult{
		Success:   true,
		PostID:    postID,
		Timestamp: time.Now(),
	}, nil
}
