// Package client is the Go HTTP layer for the Spiritually API: one
// request function per endpoint, with the session token held explicitly
// on the Client value instead of in ambient global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client calls the Spiritually REST API. The zero token means
// unauthenticated; Login stores the issued bearer token and Logout clears
// it. Client is not safe for concurrent mutation of the session.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, or "" when logged out. Callers
// that persist sessions can store it and restore it with SetToken.
func (c *Client) Token() string { return c.token }

// SetToken restores a previously issued session token.
func (c *Client) SetToken(token string) { c.token = token }

// Logout clears the session token.
func (c *Client) Logout() { c.token = "" }

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// User mirrors the server's public user representation.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	BirthDetails BirthDetails `json:"birthDetails"`
	Preferences  Preferences  `json:"preferences"`
	Profile      Profile      `json:"profile"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

type BirthDetails struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Place    string `json:"place,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type Preferences struct {
	NotificationFrequency string   `json:"notificationFrequency,omitempty"`
	Interests             []string `json:"interests,omitempty"`
}

type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Tradition mirrors the server's tradition representation.
type Tradition struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Traditions      []string         `json:"traditions,omitempty"`
	KeyPrinciples   []string         `json:"keyPrinciples,omitempty"`
	Practices       []string         `json:"practices,omitempty"`
	KeyBeliefs      []string         `json:"keyBeliefs,omitempty"`
	Elements        []string         `json:"elements,omitempty"`
	Keywords        []string         `json:"keywords,omitempty"`
	EnhancedContent *EnhancedContent `json:"enhancedContent,omitempty"`
}

type EnhancedContent struct {
	PersonalInsights      string   `json:"personalInsights,omitempty"`
	PracticalApplications []string `json:"practicalApplications,omitempty"`
	ModernPractices       []string `json:"modernPractices,omitempty"`
	ModernInterpretations string   `json:"modernInterpretations,omitempty"`
	CulturalContext       string   `json:"culturalContext,omitempty"`
	RecommendedReadings   []string `json:"recommendedReadings,omitempty"`
}

// Catalog is the combined three-collection response shape.
type Catalog struct {
	Philosophies        []Tradition `json:"philosophies"`
	Religions           []Tradition `json:"religions"`
	AstrologicalSystems []Tradition `json:"astrologicalSystems"`
}

// Reading mirrors one reading-history entry.
type Reading struct {
	Date         string    `json:"date,omitempty"`
	QuestionType string    `json:"questionType,omitempty"`
	Question     string    `json:"question,omitempty"`
	Answer       string    `json:"answer,omitempty"`
	Feedback     *Feedback `json:"feedback,omitempty"`
}

type Feedback struct {
	Helpful  bool   `json:"helpful"`
	Comments string `json:"comments,omitempty"`
}

// ChatMessage is one chat turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and stores the issued bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ProfilePatch carries optional profile updates; nil fields are left
// untouched server-side.
type ProfilePatch struct {
	Profile      *Profile      `json:"profile,omitempty"`
	Preferences  *Preferences  `json:"preferences,omitempty"`
	BirthDetails *BirthDetails `json:"birthDetails,omitempty"`
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	return c.do(ctx, http.MethodPost, "/auth/password", body, nil)
}

// Readings lists the authenticated user's reading history.
func (c *Client) Readings(ctx context.Context) ([]Reading, error) {
	var out struct {
		Readings []Reading `json:"readings"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/readings", nil, &out); err != nil {
		return nil, err
	}
	return out.Readings, nil
}

// RecordReading appends an entry to the authenticated user's history.
func (c *Client) RecordReading(ctx context.Context, reading Reading) error {
	return c.do(ctx, http.MethodPost, "/auth/readings", reading, nil)
}

// ListAll fetches all three collections.
func (c *Client) ListAll(ctx context.Context) (*Catalog, error) {
	var out Catalog
	if err := c.do(ctx, http.MethodGet, "/traditions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collection fetches one collection by tag; authenticated sessions get
// the enhanced variant, matching the browser client's behavior.
func (c *Client) Collection(ctx context.Context, tag string) ([]Tradition, error) {
	path := "/" + tag
	if c.token != "" {
		path = "/enhanced/" + tag
	}
	var out []Tradition
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tradition fetches one record by collection tag and id.
func (c *Client) Tradition(ctx context.Context, tag, id string) (*Tradition, error) {
	var out Tradition
	if err := c.do(ctx, http.MethodGet, "/"+tag+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a text search across all three collections; authenticated
// sessions get the enhanced variant.
func (c *Client) Search(ctx context.Context, query string) (*Catalog, error) {
	path := "/search"
	if c.token != "" {
		path = "/enhanced/search"
	}
	var out Catalog
	if err := c.do(ctx, http.MethodGet, path+"?query="+url.QueryEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one chat turn about the addressed tradition and returns the
// assistant's reply.
func (c *Client) Chat(ctx context.Context, tag, id, message string) (*ChatMessage, error) {
	var out ChatMessage
	body := map[string]string{"message": message}
	if err := c.do(ctx, http.MethodPost, "/chat/"+tag+"/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
