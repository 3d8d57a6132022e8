package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

const (
	DefaultBaseURL       = "https://api.quran.com/api/v4"
	DefaultTranslationID = 149 // Dr. Mustafa Khattab, The Clear Quran
	DefaultTimeout       = 10 * time.Second
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL       string
	TranslationID int
	Timeout       time.Duration
	Logger        *zap.Logger
}

// Client talks to the quran.com v4 REST API.
// Every call is a single request; failures are returned, never retried.
type Client struct {
	http          *resty.Client
	baseURL       string
	translationID int
}

type versesResponse struct {
	Verses []struct {
		ID          int    `json:"id"`
		VerseKey    string `json:"verse_key"`
		TextUthmani string `json:"text_uthmani"`
	} `json:"verses"`
}

type translationsResponse struct {
	Translations []struct {
		ResourceID int    `json:"resource_id"`
		Text       string `json:"text"`
	} `json:"translations"`
}

type chapterResponse struct {
	Chapter *struct {
		ID          int    `json:"id"`
		NameSimple  string `json:"name_simple"`
		VersesCount int    `json:"verses_count"`
	} `json:"chapter"`
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.TranslationID == 0 {
		opts.TranslationID = DefaultTranslationID
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetLogger(opts.Logger.Sugar()).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "ayah-printer/1.0")

	return &Client{
		http:          rc,
		baseURL:       baseURL,
		translationID: opts.TranslationID,
	}
}

// TranslationID returns the translation resource this client fetches.
func (c *Client) TranslationID() int {
	return c.translationID
}

// ArabicVerse fetches the Uthmani script text of ref.
func (c *Client) ArabicVerse(ctx context.Context, ref entities.VerseReference) (string, error) {
	var out versesResponse
	u, err := c.get(ctx, "/quran/verses/uthmani", map[string]string{"verse_key": ref.Key()}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Verses) == 0 || out.Verses[0].TextUthmani == "" {
		return "", &ParseError{URL: u, Field: "verses[0].text_uthmani"}
	}
	return out.Verses[0].TextUthmani, nil
}

// TranslatedVerse fetches the English translation of ref with footnote
// markers removed.
func (c *Client) TranslatedVerse(ctx context.Context, ref entities.VerseReference) (string, error) {
	var out translationsResponse
	path := "/quran/translations/" + strconv.Itoa(c.translationID)
	u, err := c.get(ctx, path, map[string]string{"verse_key": ref.Key()}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Translations) == 0 || out.Translations[0].Text == "" {
		return "", &ParseError{URL: u, Field: "translations[0].text"}
	}

	text, err := StripFootnotes(out.Translations[0].Text)
	if err != nil {
		return "", &ParseError{URL: u, Field: "translations[0].text", Err: err}
	}
	return text, nil
}

// Chapter fetches the English metadata of a surah.
func (c *Client) Chapter(ctx context.Context, number int) (entities.ChapterInfo, error) {
	var out chapterResponse
	u, err := c.get(ctx, fmt.Sprintf("/chapters/%d", number), map[string]string{"language": "en"}, &out)
	if err != nil {
		return entities.ChapterInfo{}, err
	}
	if out.Chapter == nil || out.Chapter.NameSimple == "" {
		return entities.ChapterInfo{}, &ParseError{URL: u, Field: "chapter.name_simple"}
	}
	if out.Chapter.VersesCount <= 0 {
		return entities.ChapterInfo{}, &ParseError{URL: u, Field: "chapter.verses_count"}
	}

	return entities.ChapterInfo{
		Number:     number,
		Name:       out.Chapter.NameSimple,
		VerseCount: out.Chapter.VersesCount,
	}, nil
}

// get issues one GET and decodes the JSON body into out. It returns the
// request URL for error reporting.
func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) (string, error) {
	u := c.baseURL + path

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return u, &FetchError{URL: u, Err: err}
	}
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		u = resp.RawResponse.Request.URL.String()
	}
	if !resp.IsSuccess() {
		return u, &FetchError{URL: u, StatusCode: resp.StatusCode(), Err: fmt.Errorf("%s", http.StatusText(resp.StatusCode()))}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return u, &ParseError{URL: u, Field: "body", Err: err}
	}
	return u, nil
}
