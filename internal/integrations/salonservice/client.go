package salonservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с SalonService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SalonService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSalon получает салон по ID
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*Salon, error) {
	url := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)

	var salon Salon
	if err := c.getJSON(ctx, url, &salon, ErrSalonNotFound); err != nil {
		return nil, err
	}

	if !salon.IsActive {
		return nil, ErrSalonNotFound
	}

	return &salon, nil
}

// GetMaster получает мастера по ID
func (c *Client) GetMaster(ctx context.Context, masterID int64) (*Master, error) {
	url := fmt.Sprintf("%s/internal/masters/%d", c.baseURL, masterID)

	var master Master
	if err := c.getJSON(ctx, url, &master, ErrMasterNotFound); err != nil {
		return nil, err
	}

	if !master.IsActive {
		return nil, ErrMasterNotFound
	}

	return &master, nil
}

// IsManager проверяет, является ли пользователь менеджером салона
func (c *Client) IsManager(ctx context.Context, salonID, userID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/managers/%d", c.baseURL, salonID, userID)

	var check ManagerCheck
	if err := c.getJSON(ctx, url, &check, ErrSalonNotFound); err != nil {
		return false, err
	}

	return check.IsManager, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
