package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain"
	"printstock/internal/handler"
	"printstock/internal/service"
	"printstock/internal/session"
	"printstock/mocks"
)

func newTestContext(t *testing.T, method, path string, body *bytes.Buffer) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func multipartInvoice(t *testing.T, fileName, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestReconciliationHandler_Start_Success(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)

	view := &service.SessionView{ID: uuid.New(), Phase: domain.PhaseReview, FileName: "invoice.pdf"}
	mockSvc.On("Start", mock.Anything, mock.AnythingOfType("service.StartInput")).Return(view, nil)

	body, contentType := multipartInvoice(t, "invoice.pdf", "application/pdf")
	c, w := newTestContext(t, http.MethodPost, "/api/v1/reconciliation/sessions", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Start(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestReconciliationHandler_Start_MissingFile(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/reconciliation/sessions", nil)

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestReconciliationHandler_Start_UnsupportedType(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	mockSvc.On("Start", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartInvoice(t, "invoice.docx", "application/msword")
	c, w := newTestContext(t, http.MethodPost, "/api/v1/reconciliation/sessions", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestReconciliationHandler_Get_InvalidID(t *testing.T) {
	h := handler.NewReconciliationHandler(new(mocks.MockReconciliationService))

	c, w := newTestContext(t, http.MethodGet, "/api/v1/reconciliation/sessions/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconciliationHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("Get", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/reconciliation/sessions/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestReconciliationHandler_UpdateDecision(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	decision := &domain.Decision{ItemIndex: 1, Action: domain.ActionLink, Category: domain.ItemKindMaterial}
	mockSvc.On("UpdateDecision", mock.Anything, id, 1, mock.AnythingOfType("domain.DecisionPatch")).
		Return(decision, nil)

	body := bytes.NewBufferString(`{"linked_material_id": "` + uuid.New().String() + `"}`)
	c, w := newTestContext(t, http.MethodPatch, "/api/v1/reconciliation/sessions/"+id.String()+"/decisions/1", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "index", Value: "1"}}

	h.UpdateDecision(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestReconciliationHandler_UpdateDecision_BadIndex(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/reconciliation/sessions/"+id.String()+"/decisions/minus", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "index", Value: "minus"}}

	h.UpdateDecision(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciliationHandler_Commit_Detaches(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()

	committed := make(chan struct{})
	mockSvc.On("Commit", mock.Anything, id).Run(func(mock.Arguments) { close(committed) }).Return(nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/reconciliation/sessions/"+id.String()+"/commit", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Commit(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	select {
	case <-committed:
	case <-time.After(time.Second):
		t.Fatal("commit was never started")
	}
}

func TestReconciliationHandler_Progress(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("Progress", mock.Anything, id).
		Return(session.Progress{Completed: 2, Total: 5}, domain.PhaseCreating, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/reconciliation/sessions/"+id.String()+"/progress", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Progress(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["completed"])
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, "creating", data["phase"])
}

func TestReconciliationHandler_Handoff_NotReconciled(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("Handoff", mock.Anything, id).Return(nil, domain.ErrNotReconciled)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/reconciliation/sessions/"+id.String()+"/handoff", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Handoff(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReconciliationHandler_Archive(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("ArchiveURL", mock.Anything, id).Return("https://example.com/signed", nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/reconciliation/sessions/"+id.String()+"/archive", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Archive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "https://example.com/signed", data["url"])
}

func TestReconciliationHandler_Archive_NotArchived(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("ArchiveURL", mock.Anything, id).Return("", domain.ErrNotFound)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/reconciliation/sessions/"+id.String()+"/archive", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Archive(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconciliationHandler_Abandon(t *testing.T) {
	mockSvc := new(mocks.MockReconciliationService)
	h := handler.NewReconciliationHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("Abandon", mock.Anything, id).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/reconciliation/sessions/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Abandon(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
