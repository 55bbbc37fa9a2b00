package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates/client"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/mocks"
	"github.com/lcampos/bankflow/pkg/registry"
	"github.com/lcampos/bankflow/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, banking corebanking.Client) *fiber.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := registry.NewRegistry(logger)
	reg.Register(client.NewCreateFactory(banking))
	reg.Register(client.NewAssignStaffFactory(banking))
	reg.Register(client.NewActivateFactory(banking))

	dispatcher := engine.NewDispatcher(reg, engine.NewRunner(nil, nil, logger), nil, logger)
	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: web.ProcessClientOnboarding,
		Steps: []engine.Step{
			{DelegateID: "createClient"},
			{DelegateID: "assignStaff"},
		},
	})

	handlers := web.NewAPIHandlers(dispatcher, reg, validator.New(validator.WithRequiredStructEnabled()), logger)

	app := fiber.New()

	p := app.Group("/processes")
	p.Post("/", handlers.StartProcess)
	p.Get("/:id/variables", handlers.GetVariables)
	p.Get("/:id/tasks", handlers.ListTasks)
	p.Delete("/:id", handlers.TerminateProcess)

	app.Post("/tasks/:id/complete", handlers.CompleteTask)
	app.Get("/delegates", handlers.ListDelegates)
	app.Post("/clients/onboard", handlers.OnboardClient)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestOnboardClient_Success(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("CreateClient", mock.Anything, mock.Anything).
		Return(&corebanking.ClientResponse{ClientID: 55, OfficeID: 1}, nil)

	app := setupTestApp(t, banking)

	resp := postJSON(t, app, "/clients/onboard", web.OnboardClientRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		OfficeID:  1,
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result web.StartProcessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.ProcessID)
	assert.EqualValues(t, 55, result.Variables["clientId"])
	assert.Equal(t, false, result.Variables["staffAssigned"])
}

func TestOnboardClient_ValidationFailure(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	app := setupTestApp(t, banking)

	resp := postJSON(t, app, "/clients/onboard", web.OnboardClientRequest{
		FirstName: "Ada",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	banking.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
}

func TestStartProcess_UnknownDefinition(t *testing.T) {
	app := setupTestApp(t, &mocks.MockCoreBankingClient{})

	resp := postJSON(t, app, "/processes/", web.StartProcessRequest{ProcessKey: "noSuchProcess"})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetVariables_UnknownProcess(t *testing.T) {
	app := setupTestApp(t, &mocks.MockCoreBankingClient{})

	req, err := http.NewRequest(http.MethodGet, "/processes/proc-999/variables", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompleteTask_UnknownTask(t *testing.T) {
	app := setupTestApp(t, &mocks.MockCoreBankingClient{})

	resp := postJSON(t, app, "/tasks/task-456/complete", web.CompleteTaskRequest{})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartProcess_StepFailureReturnsAuditTrail(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("CreateClient", mock.Anything, mock.Anything).
		Return(nil, assertableError("downstream outage"))

	app := setupTestApp(t, banking)

	resp := postJSON(t, app, "/clients/onboard", web.OnboardClientRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		OfficeID:  1,
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result["process_id"])

	vars, ok := result["variables"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, vars["clientCreationSuccess"])
	assert.NotEmpty(t, vars["errorMessage"])
}

func TestListDelegates(t *testing.T) {
	app := setupTestApp(t, &mocks.MockCoreBankingClient{})

	req, err := http.NewRequest(http.MethodGet, "/delegates", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var delegates []web.DelegateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&delegates))
	require.Len(t, delegates, 3)
	assert.Equal(t, "activateClient", delegates[0].ID)
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
