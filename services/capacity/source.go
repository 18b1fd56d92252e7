package capacity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fieldassist/models"
)

// AvailabilitySource is the scheduling-platform collaborator: raw open windows
// per technician for a given date.
type AvailabilitySource interface {
	GetOpenWindows(ctx context.Context, technicianID string, date string) ([]models.TimeWindow, error)
	ListTechnicians(ctx context.Context, date string) ([]string, error)
}

// HTTPAvailabilitySource queries the upstream field-service platform.
type HTTPAvailabilitySource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPAvailabilitySource(baseURL string) *HTTPAvailabilitySource {
	return &HTTPAvailabilitySource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (s *HTTPAvailabilitySource) ListTechnicians(ctx context.Context, date string) ([]string, error) {
	var out struct {
		Technicians []string `json:"technicians"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("/technicians?date=%s", url.QueryEscape(date)), &out); err != nil {
		return nil, err
	}
	return out.Technicians, nil
}

func (s *HTTPAvailabilitySource) GetOpenWindows(ctx context.Context, technicianID, date string) ([]models.TimeWindow, error) {
	var out struct {
		Windows []models.TimeWindow `json:"windows"`
	}
	path := fmt.Sprintf("/technicians/%s/windows?date=%s", url.PathEscape(technicianID), url.QueryEscape(date))
	if err := s.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Windows, nil
}

func (s *HTTPAvailabilitySource) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build availability request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("availability service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode availability response: %w", err)
	}
	return nil
}
