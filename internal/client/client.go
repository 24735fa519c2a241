// Package client is a Go client for the Tomato API together with the view
// state the web frontend keeps for each form: the form values, per-field
// errors, loaded lists, an in-flight flag and transient notifications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

// APIError is a non-2xx response. Message is the payload's "message" or
// "error" field and is empty when the payload has neither.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client talks to the Tomato API. Requests carry no timeout of their own;
// cancel the context to abandon one.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var out []model.Recipe
	err := c.do(ctx, http.MethodGet, "/api/recipes", "", nil, &out)
	return out, err
}

// CreateRecipe submits the form as multipart data. Blank list entries are
// dropped and the image part is sent only when the form carries one.
func (c *Client) CreateRecipe(ctx context.Context, f validation.RecipeForm) (*model.Recipe, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"title", f.Title},
		{"category", f.Category},
		{"difficulty", f.Difficulty},
		{"cookTime", f.CookTime},
		{"servings", strconv.Itoa(f.Servings)},
	}
	for _, v := range validation.NonBlank(f.Ingredients) {
		fields = append(fields, [2]string{"ingredients[]", v})
	}
	for _, v := range validation.NonBlank(f.Instructions) {
		fields = append(fields, [2]string{"instructions[]", v})
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}

	if len(f.Image) > 0 {
		name := f.ImageName
		if name == "" {
			name = "image"
		}
		part, err := mw.CreateFormFile("image", name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Image); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out model.Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes", mw.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+id, "", nil, nil)
}

func (c *Client) ListReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	err := c.do(ctx, http.MethodGet, "/api/reviews", "", nil, &out)
	return out, err
}

func (c *Client) CreateReview(ctx context.Context, f validation.ReviewForm) (*model.Review, error) {
	payload := map[string]interface{}{
		"name":     f.Name,
		"email":    f.Email,
		"rating":   f.Rating,
		"comment":  f.Comment,
		"category": f.Category,
	}
	var out model.Review
	if err := c.doJSON(ctx, http.MethodPost, "/api/reviews", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikeReview(ctx context.Context, id string) (*model.Review, error) {
	var out model.Review
	if err := c.do(ctx, http.MethodPatch, "/api/reviews/"+id+"/like", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Menu(ctx context.Context) ([]model.MenuItem, error) {
	var out []model.MenuItem
	err := c.do(ctx, http.MethodGet, "/api/menu", "", nil, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, itemID int, f validation.OrderForm) (*model.Order, error) {
	payload := map[string]interface{}{
		"itemId":   itemID,
		"quantity": f.Quantity,
		"name":     f.Name,
		"phone":    f.Phone,
		"email":    f.Email,
		"address":  f.Address,
	}
	var out model.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var out model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PayOrder submits the card form for a pending order
func (c *Client) PayOrder(ctx context.Context, id string, f validation.PaymentForm) (*model.Order, error) {
	payload := map[string]string{
		"name":       f.Name,
		"cardNumber": f.CardNumber,
		"expiry":     f.Expiry,
		"cvv":        f.CVV,
	}
	var out struct {
		Order *model.Order `json:"order"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders/"+id+"/payment", payload, &out); err != nil {
		return nil, err
	}
	if out.Order == nil {
		return nil, fmt.Errorf("payment response has no order")
	}
	return out.Order, nil
}

// SignUp posts the account form to an accounts service mounted at
// /api/users/signup and returns its message
func (c *Client) SignUp(ctx context.Context, f validation.SignUpForm) (string, error) {
	payload := map[string]string{
		"firstName": f.FirstName,
		"lastName":  f.LastName,
		"email":     f.Email,
		"password":  f.Password,
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/signup", payload, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(data), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage picks "message", then "error", from a JSON error payload
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
