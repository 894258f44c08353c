package provinces

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/safar/storefront/internal/logger"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when the provinces API cannot be reached or
// answers with an error.
var ErrUnavailable = errors.New("provinces api unavailable")

// Code is an administrative unit code. The API sends numbers; older
// snapshots send strings.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode code: %w", err)
	}
	*c = Code(n.String())
	return nil
}

type Province struct {
	Name      string     `json:"name"`
	Code      Code       `json:"code"`
	Districts []District `json:"districts,omitempty"`
}

type District struct {
	Name  string `json:"name"`
	Code  Code   `json:"code"`
	Wards []Ward `json:"wards,omitempty"`
}

type Ward struct {
	Name string `json:"name"`
	Code Code   `json:"code"`
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.OrNop(log).Named("provinces"),
	}
}

func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	var out []Province
	if err := c.get(ctx, "/p/", &out); err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	return out, nil
}

// Districts returns the districts of a province.
func (c *Client) Districts(ctx context.Context, provinceCode Code) ([]District, error) {
	var p Province
	if err := c.get(ctx, fmt.Sprintf("/p/%s?depth=2", provinceCode), &p); err != nil {
		return nil, fmt.Errorf("list districts of province %s: %w", provinceCode, err)
	}
	return p.Districts, nil
}

// Wards returns the wards of a district.
func (c *Client) Wards(ctx context.Context, districtCode Code) ([]Ward, error) {
	var d District
	if err := c.get(ctx, fmt.Sprintf("/d/%s?depth=2", districtCode), &d); err != nil {
		return nil, fmt.Errorf("list wards of district %s: %w", districtCode, err)
	}
	return d.Wards, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("provinces api unreachable", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("provinces api error", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return nil
}

// Match filters names by case-insensitive substring, as the address form's
// search boxes do.
func Match[T interface{ name() string }](items []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := []T{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.name()), q) {
			out = append(out, it)
		}
	}
	return out
}

func (p Province) name() string { return p.Name }
func (d District) name() string { return d.Name }
func (w Ward) name() string     { return w.Name }
