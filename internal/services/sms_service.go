package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var smsHTTPClient = &http.Client{Timeout: 15 * time.Second}

// SMSService delivers OTP codes through a 2Factor-style gateway, which takes
// the phone number and code in the URL path.
type SMSService struct {
	baseURL string
	apiKey  string
}

// NewSMSService creates a new SMSService.
func NewSMSService(baseURL, apiKey string) *SMSService {
	return &SMSService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// SendOTP dispatches the code to the given phone. A non-2xx gateway response
// is an error; the caller decides what to do with already-persisted OTP state.
func (s *SMSService) SendOTP(ctx context.Context, phone, code string) error {
	if s.apiKey == "" {
		return errors.New("sms api key not configured")
	}

	endpoint := fmt.Sprintf("%s/API/V1/%s/SMS/%s/%s",
		s.baseURL, s.apiKey, url.PathEscape(phone), url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("sms request build: %w", err)
	}

	resp, err := smsHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}
