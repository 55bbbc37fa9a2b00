package corebanking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lcampos/bankflow/pkg/faults"
)

const defaultTimeoutSeconds = 30

// Config carries the connection settings for the core-banking API.
type Config struct {
	BaseURL  string
	Tenant   string
	Username string
	Password string
}

// HTTPClient is a thin JSON client for the core-banking REST API. It performs
// exactly one request per call: retries, if any, are driven by the workflow
// engine re-invoking the owning delegate.
type HTTPClient struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

func NewHTTPClient(config Config, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		config: config,
		client: &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		logger: logger.With("module", "corebanking_client"),
	}
}

func (c *HTTPClient) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	var resp ClientResponse

	err := c.do(ctx, http.MethodPost, "/clients", "createClient", "clients", req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *HTTPClient) ActivateClient(ctx context.Context, clientID int64, activationDate string) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "activate", "activateClient", map[string]any{
		"activationDate": activationDate,
		"dateFormat":     "dd MMMM yyyy",
		"locale":         "en",
	})
}

func (c *HTTPClient) CloseClient(ctx context.Context, clientID, closureReasonID int64, closureDate string) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "close", "closeClient", map[string]any{
		"closureReasonId": closureReasonID,
		"closureDate":     closureDate,
		"dateFormat":      "dd MMMM yyyy",
		"locale":          "en",
	})
}

func (c *HTTPClient) RejectClient(ctx context.Context, clientID, rejectionReasonID int64, rejectionDate string) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "reject", "rejectClient", map[string]any{
		"rejectionReasonId": rejectionReasonID,
		"rejectionDate":     rejectionDate,
		"dateFormat":        "dd MMMM yyyy",
		"locale":            "en",
	})
}

func (c *HTTPClient) AssignStaff(ctx context.Context, clientID, staffID int64) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "assignStaff", "assignStaff", map[string]any{
		"staffId": staffID,
	})
}

func (c *HTTPClient) ProposeTransfer(ctx context.Context, clientID int64, req TransferProposalRequest) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "proposeTransfer", "proposeTransfer", req)
}

func (c *HTTPClient) AcceptTransfer(ctx context.Context, clientID int64, note string) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "acceptTransfer", "acceptTransfer", map[string]any{"note": note})
}

func (c *HTTPClient) RejectTransfer(ctx context.Context, clientID int64, note string) (*ClientResponse, error) {
	return c.clientCommand(ctx, clientID, "rejectTransfer", "rejectTransfer", map[string]any{"note": note})
}

func (c *HTTPClient) CreateLoan(ctx context.Context, req CreateLoanRequest) (*LoanResponse, error) {
	var resp LoanResponse

	err := c.do(ctx, http.MethodPost, "/loans", "createLoan", "loans", req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *HTTPClient) ApproveLoan(ctx context.Context, loanID int64, req ApproveLoanRequest) (*LoanTransactionResponse, error) {
	return c.loanCommand(ctx, loanID, "approve", "approveLoan", req)
}

func (c *HTTPClient) RejectLoan(ctx context.Context, loanID int64, req RejectLoanRequest) (*LoanTransactionResponse, error) {
	return c.loanCommand(ctx, loanID, "reject", "rejectLoan", req)
}

func (c *HTTPClient) DisburseLoan(ctx context.Context, loanID int64, req DisburseLoanRequest) (*LoanTransactionResponse, error) {
	return c.loanCommand(ctx, loanID, "disburse", "disburseLoan", req)
}

func (c *HTTPClient) DeleteLoan(ctx context.Context, loanID int64) error {
	path := fmt.Sprintf("/loans/%d", loanID)

	return c.do(ctx, http.MethodDelete, path, "deleteLoan", fmt.Sprintf("loan %d", loanID), nil, nil)
}

func (c *HTTPClient) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	var loan Loan

	path := fmt.Sprintf("/loans/%d?associations=charges", loanID)

	err := c.do(ctx, http.MethodGet, path, "getLoan", fmt.Sprintf("loan %d", loanID), nil, &loan)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (c *HTTPClient) GetCodeValues(ctx context.Context, codeName string) ([]CodeValue, error) {
	var values []CodeValue

	path := "/codes/" + url.PathEscape(codeName) + "/codevalues"

	err := c.do(ctx, http.MethodGet, path, "getCodeValues", codeName, nil, &values)
	if err != nil {
		return nil, err
	}

	return values, nil
}

func (c *HTTPClient) CreateCodeValue(ctx context.Context, codeName, name string) (*CodeValue, error) {
	var value CodeValue

	path := "/codes/" + url.PathEscape(codeName) + "/codevalues"

	err := c.do(ctx, http.MethodPost, path, "createCodeValue", codeName, map[string]any{"name": name}, &value)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

func (c *HTTPClient) clientCommand(ctx context.Context, clientID int64, command, operation string, body any) (*ClientResponse, error) {
	var resp ClientResponse

	path := fmt.Sprintf("/clients/%d?command=%s", clientID, command)

	err := c.do(ctx, http.MethodPost, path, operation, fmt.Sprintf("client %d", clientID), body, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *HTTPClient) loanCommand(ctx context.Context, loanID int64, command, operation string, body any) (*LoanTransactionResponse, error) {
	var resp LoanTransactionResponse

	path := fmt.Sprintf("/loans/%d?command=%s", loanID, command)

	err := c.do(ctx, http.MethodPost, path, operation, fmt.Sprintf("loan %d", loanID), body, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, operation, resource string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &faults.APIError{Operation: operation, Resource: resource, Err: err}
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &faults.APIError{Operation: operation, Resource: resource, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Fineract-Platform-TenantId", c.config.Tenant)
	req.SetBasicAuth(c.config.Username, c.config.Password)

	c.logger.Debug("Calling core banking API", "method", method, "path", path, "operation", operation)

	resp, err := c.client.Do(req)
	if err != nil {
		return &faults.APIError{Operation: operation, Resource: resource, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &faults.APIError{Operation: operation, Resource: resource, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &faults.APIError{
			Operation:  operation,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil {
		return nil
	}

	err = json.Unmarshal(respBody, out)
	if err != nil {
		return &faults.APIError{Operation: operation, Resource: resource, StatusCode: resp.StatusCode, Err: err}
	}

	return nil
}
