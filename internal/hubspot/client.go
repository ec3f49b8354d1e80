// Package hubspot is a minimal client for the HubSpot CRM v3 contacts and lists APIs
package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	contactsPath       = "/crm/v3/objects/contacts"
	contactsSearchPath = "/crm/v3/objects/contacts/search"
	listMembershipPath = "/crm/v3/lists/{listId}/memberships/add"
)

// Contact property names
const (
	PropertyEmail        = "email"
	PropertyFirstName    = "firstname"
	PropertyLastName     = "lastname"
	PropertyPhone        = "phone"
	PropertyLearningArea = "vtb_learning_area"
	PropertyRegisteredAt = "vtb_registered_at"
)

// RegisteredAtLayout is the format of the PropertyRegisteredAt value
const RegisteredAtLayout = "2006-01-02 15:04:05 UTC"

var (
	// ErrConflict is returned when a contact with the same email already exists
	ErrConflict = errors.New("hubspot: contact already exists")
	// ErrContactNotFound is returned when a search matches no contact
	ErrContactNotFound = errors.New("hubspot: contact not found")
	// ErrMalformedResponse is returned when a successful response can not be decoded
	ErrMalformedResponse = errors.New("hubspot: malformed response")
)

// APIError is returned for non successful HubSpot responses other than a conflict
type APIError struct {
	StatusCode int
	Category   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hubspot: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("hubspot: status %d: %s", e.StatusCode, e.Message)
}

// Config holds HubSpot client settings
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Contact is a HubSpot contact with its requested properties
type Contact struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Client talks to the HubSpot CRM API
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a new HubSpot client authenticated with a private app token
func NewClient(cfg Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

type createContactRequest struct {
	Properties map[string]string `json:"properties"`
}

// CreateContact creates a contact and returns its HubSpot id.
//
// ErrConflict is returned if a contact with the same email already exists.
func (c *Client) CreateContact(ctx context.Context, properties map[string]string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createContactRequest{Properties: properties}).
		Post(contactsPath)
	if err != nil {
		return "", fmt.Errorf("hubspot: create contact request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusConflict {
		return "", ErrConflict
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return "", newAPIError(resp)
	}

	var contact Contact
	if err := json.Unmarshal(resp.Body(), &contact); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if contact.ID == "" {
		return "", fmt.Errorf("%w: contact id is missing", ErrMalformedResponse)
	}

	c.logger.Debug("hubspot contact created", zap.String("contact_id", contact.ID))

	return contact.ID, nil
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchFilterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []searchFilterGroup `json:"filterGroups"`
	Properties   []string            `json:"properties"`
	Limit        int                 `json:"limit"`
}

type searchResponse struct {
	Total   int       `json:"total"`
	Results []Contact `json:"results"`
}

// FindContactByEmail searches a contact with exactly the given email.
//
// ErrContactNotFound is returned if no contact matches.
func (c *Client) FindContactByEmail(ctx context.Context, email string, properties ...string) (*Contact, error) {
	body := searchRequest{
		FilterGroups: []searchFilterGroup{{
			Filters: []searchFilter{{PropertyName: PropertyEmail, Operator: "EQ", Value: email}},
		}},
		Properties: properties,
		Limit:      1,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(contactsSearchPath)
	if err != nil {
		return nil, fmt.Errorf("hubspot: search contacts request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Results) == 0 {
		return nil, ErrContactNotFound
	}

	contact := result.Results[0]
	if contact.Properties == nil {
		contact.Properties = map[string]string{}
	}
	return &contact, nil
}

// AddContactToList adds a contact to a static HubSpot list
func (c *Client) AddContactToList(ctx context.Context, listID, contactID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("listId", listID).
		SetBody([]string{contactID}).
		Put(listMembershipPath)
	if err != nil {
		return fmt.Errorf("hubspot: add to list request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}

	c.logger.Debug("hubspot contact added to list", zap.String("contact_id", contactID), zap.String("list_id", listID))

	return nil
}

type errorResponse struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// newAPIError builds an APIError from a failed response, the body is best effort
func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var body errorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Category = body.Category
	}

	return apiErr
}
