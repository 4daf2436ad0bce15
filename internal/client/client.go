// Package client calls the portfolio API and checks what comes back against
// the same schema the server enforces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Zachkp/portfolio/internal/schema"
)

// Paths served by the API.
const (
	SkillsPath         = "/api/skills"
	ProjectsPath       = "/api/projects"
	EducationPath      = "/api/education"
	CertificationsPath = "/api/certifications"
	PublicationsPath   = "/api/publications"
	ContactPath        = "/api/contact"
)

// ErrSubmit is returned when the server refuses a contact message for a
// reason other than validation.
var ErrSubmit = errors.New("failed to send message")

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the API rooted at baseURL. A nil hc uses
// http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) Skills(ctx context.Context) ([]schema.Skill, error) {
	return getList[schema.Skill](ctx, c, SkillsPath, "skills")
}

func (c *Client) Projects(ctx context.Context) ([]schema.Project, error) {
	return getList[schema.Project](ctx, c, ProjectsPath, "projects")
}

func (c *Client) Education(ctx context.Context) ([]schema.Education, error) {
	return getList[schema.Education](ctx, c, EducationPath, "education")
}

func (c *Client) Certifications(ctx context.Context) ([]schema.Certification, error) {
	return getList[schema.Certification](ctx, c, CertificationsPath, "certifications")
}

func (c *Client) Publications(ctx context.Context) ([]schema.Publication, error) {
	return getList[schema.Publication](ctx, c, PublicationsPath, "publications")
}

// SubmitContact validates in locally, posts it and returns the stored
// message. A 400 from the server comes back as *schema.ValidationError.
func (c *Client) SubmitContact(ctx context.Context, in schema.InsertMessage) (schema.Message, error) {
	if err := schema.Validate(in); err != nil {
		return schema.Message{}, err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return schema.Message{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ContactPath, bytes.NewReader(body))
	if err != nil {
		return schema.Message{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return schema.Message{}, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusBadRequest:
		ve := &schema.ValidationError{}
		if err := json.NewDecoder(resp.Body).Decode(ve); err != nil || ve.Message == "" {
			return schema.Message{}, fmt.Errorf("%w: unreadable 400 response", ErrSubmit)
		}
		return schema.Message{}, ve
	default:
		return schema.Message{}, fmt.Errorf("%w: status %d", ErrSubmit, resp.StatusCode)
	}

	var msg schema.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return schema.Message{}, fmt.Errorf("decode contact response: %w", err)
	}
	if err := schema.Validate(msg); err != nil {
		return schema.Message{}, fmt.Errorf("invalid contact response: %w", err)
	}
	return msg, nil
}

func getList[T any](ctx context.Context, c *Client, path, what string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch %s: status %d", what, resp.StatusCode)
	}

	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	if items == nil {
		return nil, fmt.Errorf("decode %s: expected an array", what)
	}
	for i := range items {
		if err := schema.Validate(items[i]); err != nil {
			return nil, fmt.Errorf("invalid %s record %d: %w", what, i, err)
		}
	}
	return items, nil
}
