package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erazemk/fundbuero/internal/model"
)

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Prename  string `json:"prename"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth", nil, map[string]string{
		"action":   "login",
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Signup registers an account and starts a session for it.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	body := struct {
		Action string `json:"action"`
		SignupRequest
	}{"signup", req}

	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/auth", nil, nil, nil)
}

// CurrentUser returns the session's user, or nil when logged out.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out struct {
		IsAuthenticated bool        `json:"isAuthenticated"`
		User            *model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, nil, &out); err != nil {
		return nil, err
	}
	if !out.IsAuthenticated {
		return nil, nil
	}
	return out.User, nil
}

// Items lists all items, newest first.
func (c *Client) Items(ctx context.Context) ([]model.Item, error) {
	return c.items(ctx, nil)
}

// ItemsBy lists the items reported by userID.
func (c *Client) ItemsBy(ctx context.Context, userID string) ([]model.Item, error) {
	return c.items(ctx, url.Values{"userId": {userID}})
}

func (c *Client) items(ctx context.Context, q url.Values) ([]model.Item, error) {
	var out struct {
		Items []model.Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// CreateItem reports an item as the session's user and returns its ID.
func (c *Client) CreateItem(ctx context.Context, item *model.Item) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, item, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateItem overwrites an item the session's user reported.
func (c *Client) UpdateItem(ctx context.Context, item *model.Item) error {
	return c.do(ctx, http.MethodPut, "/api/items", nil, item, nil)
}

// DeleteItem removes an item the session's user reported.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items", url.Values{"id": {id}}, nil, nil)
}

// Categories lists the category vocabulary.
func (c *Client) Categories(ctx context.Context) ([]model.Term, error) {
	var out struct {
		Categories []model.Term `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categorydb", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Locations lists the location vocabulary.
func (c *Client) Locations(ctx context.Context) ([]model.Term, error) {
	var out struct {
		Locations []model.Term `json:"locations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

// Contact fetches a reporter's contact details. Requires a session.
func (c *Client) Contact(ctx context.Context, userID string) (*model.Contact, error) {
	var out struct {
		User model.Contact `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/getemail", url.Values{"id": {userID}}, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile changes the session user's name and phone number.
func (c *Client) UpdateProfile(ctx context.Context, userID, prename, surname, phone string) error {
	return c.do(ctx, http.MethodPut, "/api/profile", nil, map[string]string{
		"userId":  userID,
		"prename": prename,
		"surname": surname,
		"phone":   phone,
	}, nil)
}
