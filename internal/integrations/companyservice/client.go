package companyservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CompanyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CompanyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCompany получает компанию по ID
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/internal/companies/%d", c.baseURL, companyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCompanyNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var company Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &company, nil
}

// CompanyExists проверяет, что компания существует и активна
// При недоступности CompanyService возвращает ErrServiceDegraded
func (c *Client) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	company, err := c.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			c.log.Info("Company id=%d not found", companyID)
			return false, nil
		}

		c.log.Error("CompanyService unavailable, applying graceful degradation for company_id=%d: %v", companyID, err)
		return false, fmt.Errorf("%w: company_id=%d, error=%v", ErrServiceDegraded, companyID, err)
	}

	if !company.IsActive {
		c.log.Info("Company id=%d is inactive", companyID)
		return false, nil
	}

	return true, nil
}

// CanManage проверяет, может ли компания actorID управлять расписанием компании targetID
// Разрешено самой компании и её головной компании
func (c *Client) CanManage(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID <= 0 {
		return false, nil
	}

	target, err := c.GetCompany(ctx, targetID)
	if err != nil {
		return false, err
	}

	if !target.IsActive {
		return false, nil
	}

	if target.ID == actorID {
		return true, nil
	}

	return target.ParentID != nil && *target.ParentID == actorID, nil
}
