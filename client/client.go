// Package client is the Go client for the Bhetghat REST API. It carries
// the behavior of the browser views that crosses the network boundary:
// product browsing and CRUD, checkout, auth, plus the in-memory filter and
// cart the browse views use.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/bhetghat/bhetghat-server/models"
)

// Categories is the fixed label set offered by the event forms. The server
// schema does not enforce it; this is the UI-layer enforcement point.
var Categories = []string{
	"Music",
	"Art",
	"Food",
	"Workshop",
	"Festival",
	"Networking",
	"Social",
	"Community",
	"Technology",
}

// ValidCategory reports whether c is one of the offered labels.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the Bhetghat API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FileUpload is one file part of a product form.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// ProductForm mirrors the add/update-event form.
type ProductForm struct {
	Title         string
	OrganizerName string
	Description   string
	Price         string
	IsFree        bool
	Category      string
	Date          string
	Time          string
	Venue         string
	Location      string

	EventImage   *FileUpload
	EventFile    *FileUpload
	ProfileImage *FileUpload
}

// Products fetches all events, newest first (server-side ordering).
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/product", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single event.
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/product/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type productEnvelope struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

// CreateProduct submits the event form as multipart.
func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var out productEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/product/create-product", body, contentType, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// UpdateProduct submits a partial edit form.
func (c *Client) UpdateProduct(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var out productEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/product/edit/"+url.PathEscape(id), body, contentType, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DeleteProduct removes an event.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	var out productEnvelope
	if err := c.doJSON(ctx, http.MethodDelete, "/api/product/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// CheckoutForm is the contact payload submitted from the checkout page.
type CheckoutForm struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address models.Address `json:"address"`
}

type orderRequest struct {
	CheckoutForm
	ProductIDs []string `json:"productIds"`
	TotalPrice float64  `json:"totalPrice"`
}

// CreateOrder submits the checkout form for the cart's contents. The total
// is computed from the cart at submission time.
func (c *Client) CreateOrder(ctx context.Context, form CheckoutForm, cart *Cart) (*models.Order, error) {
	req := orderRequest{
		CheckoutForm: form,
		ProductIDs:   cart.IDs(),
		TotalPrice:   cart.Total(),
	}
	var out models.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrdersByEmail lists a contact's orders, newest first. An empty result is
// a 404 APIError, matching the server convention.
func (c *Client) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/email/"+url.PathEscape(email), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders lists all orders (admin dashboard).
func (c *Client) Orders(ctx context.Context, session *Session) ([]models.Order, error) {
	var out []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, session, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches the admin dashboard aggregates.
func (c *Client) Stats(ctx context.Context, session *Session) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin", nil, session, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterForm is the registration payload; nothing is persisted until the
// emailed verification link is visited.
type RegisterForm struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

// Register requests a verification email.
func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", form, nil, nil)
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	req := map[string]string{"username": username, "password": password}
	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, nil, &out); err != nil {
		return nil, err
	}
	return newSession(out.Token, out.UserID, username), nil
}

// encode builds the multipart body for the product form.
func (f ProductForm) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"title":         f.Title,
		"organizerName": f.OrganizerName,
		"description":   f.Description,
		"price":         f.Price,
		"category":      f.Category,
		"date":          f.Date,
		"time":          f.Time,
		"venue":         f.Venue,
		"location":      f.Location,
	}
	if f.IsFree {
		fields["isFree"] = "true"
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	files := map[string]*FileUpload{
		"eventImage":   f.EventImage,
		"eventFile":    f.EventFile,
		"profileImage": f.ProfileImage,
	}
	for field, upload := range files {
		if upload == nil {
			continue
		}
		part, err := w.CreateFormFile(field, upload.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, upload.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in interface{}, session *Session, out interface{}) error {
	var body *bytes.Buffer
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, session, out)
}

func (c *Client) do(ctx context.Context, method, path string, body *bytes.Buffer, contentType string, session *Session, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session != nil {
		if !session.Authenticated() {
			return fmt.Errorf("session expired or logged out")
		}
		req.Header.Set("Authorization", "Bearer "+session.Token())
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
