package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/teammembers/internal/domain"
	"github.com/niklvrr/teammembers/internal/usecase/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTeamMemberService мок сервиса для тестов
type MockTeamMemberService struct {
	mock.Mock
}

func (m *MockTeamMemberService) Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMemberInDB, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMemberInDB), args.Error(1)
}

func (m *MockTeamMemberService) List(ctx context.Context) ([]*domain.TeamMemberInDB, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamMemberInDB), args.Error(1)
}

func (m *MockTeamMemberService) Get(ctx context.Context, storageId string) (*domain.TeamMemberInDB, error) {
	args := m.Called(ctx, storageId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMemberInDB), args.Error(1)
}

func (m *MockTeamMemberService) Update(ctx context.Context, storageId string, member *domain.TeamMember) (*domain.TeamMemberInDB, error) {
	args := m.Called(ctx, storageId, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMemberInDB), args.Error(1)
}

func (m *MockTeamMemberService) Delete(ctx context.Context, storageId string) error {
	args := m.Called(ctx, storageId)
	return args.Error(0)
}

const testStorageId = "65a1f0c2e4b0a1b2c3d4e5f6"

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestTeamMemberHandler_Create_Success(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	stored := &domain.TeamMemberInDB{
		StorageId:  testStorageId,
		TeamMember: domain.TeamMember{Id: 1, Name: "Ann", Role: "Lead"},
	}

	mockService.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.TeamMember) bool {
		return m.Id == 1 && m.Name == "Ann" && m.Role == "Lead" && m.Photo == nil
	})).Return(stored, nil)

	req := httptest.NewRequest(http.MethodPost, "/teammember/", strings.NewReader(`{"id":1,"name":"Ann","role":"Lead"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateTeamMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","id":1,"name":"Ann","role":"Lead","photo":null}`,
		w.Body.String(),
	)
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_Create_ValidationError(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/teammember/", strings.NewReader(`{"id":"x","role":"Lead"}`))
	w := httptest.NewRecorder()

	handler.CreateTeamMember(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	result := decodeMap(t, w)
	assert.Len(t, result["detail"], 2)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTeamMemberHandler_Create_Duplicate(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrTeamMemberExists)

	req := httptest.NewRequest(http.MethodPost, "/teammember/", strings.NewReader(`{"id":1,"name":"Ann","role":"Lead"}`))
	w := httptest.NewRecorder()

	handler.CreateTeamMember(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"TeamMember with this ID already exists"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_Create_StorageFailure(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("no reachable servers"))

	req := httptest.NewRequest(http.MethodPost, "/teammember/", strings.NewReader(`{"id":1,"name":"Ann","role":"Lead"}`))
	w := httptest.NewRecorder()

	handler.CreateTeamMember(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}

func TestTeamMemberHandler_List_Success(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	photo := "bob.png"
	members := []*domain.TeamMemberInDB{
		{StorageId: "a1", TeamMember: domain.TeamMember{Id: 1, Name: "Ann", Role: "Lead"}},
		{StorageId: "b2", TeamMember: domain.TeamMember{Id: 2, Name: "Bob", Role: "Dev", Photo: &photo}},
	}
	mockService.On("List", mock.Anything).Return(members, nil)

	req := httptest.NewRequest(http.MethodGet, "/teammembers/", nil)
	w := httptest.NewRecorder()

	handler.ListTeamMembers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"_id":"a1","id":1,"name":"Ann","role":"Lead","photo":null},
		{"_id":"b2","id":2,"name":"Bob","role":"Dev","photo":"bob.png"}
	]`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_List_Empty(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("List", mock.Anything).Return([]*domain.TeamMemberInDB(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/teammembers/", nil)
	w := httptest.NewRecorder()

	handler.ListTeamMembers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTeamMemberHandler_Get_Success(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	stored := &domain.TeamMemberInDB{
		StorageId:  testStorageId,
		TeamMember: domain.TeamMember{Id: 1, Name: "Ann", Role: "Lead"},
	}
	mockService.On("Get", mock.Anything, testStorageId).Return(stored, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/teammember/"+testStorageId, nil), "teammember_id", testStorageId)
	w := httptest.NewRecorder()

	handler.GetTeamMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeMap(t, w)
	assert.Equal(t, testStorageId, result["_id"])
	assert.Equal(t, float64(1), result["id"])
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_Get_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", service.WrapError(service.ErrTeamMemberNotFound, nil), http.StatusNotFound, `{"detail":"TeamMember not found"}`},
		{"invalid id", service.WrapError(service.ErrInvalidTeamMemberId, nil), http.StatusBadRequest, `{"detail":"Invalid TeamMember ID format"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTeamMemberService)
			handler := NewTeamMemberHandler(mockService, zap.NewNop())

			mockService.On("Get", mock.Anything, "bad").Return(nil, tt.err)

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/teammember/bad", nil), "teammember_id", "bad")
			w := httptest.NewRecorder()

			handler.GetTeamMember(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestTeamMemberHandler_Update_Success(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	stored := &domain.TeamMemberInDB{
		StorageId:  testStorageId,
		TeamMember: domain.TeamMember{Id: 7, Name: "A", Role: "eng"},
	}
	mockService.On("Update", mock.Anything, testStorageId, mock.MatchedBy(func(m *domain.TeamMember) bool {
		return m.Id == 7 && m.Photo == nil
	})).Return(stored, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/teammembers/"+testStorageId, strings.NewReader(`{"id":7,"name":"A","role":"eng"}`)),
		"teammember_id", testStorageId,
	)
	w := httptest.NewRecorder()

	handler.UpdateTeamMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","id":7,"name":"A","role":"eng","photo":null}`,
		w.Body.String(),
	)
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_Update_ValidationError(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/teammembers/"+testStorageId, strings.NewReader(`{"name":"A"}`)),
		"teammember_id", testStorageId,
	)
	w := httptest.NewRecorder()

	handler.UpdateTeamMember(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamMemberHandler_Update_NotFound(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("Update", mock.Anything, testStorageId, mock.Anything).
		Return(nil, service.WrapError(service.ErrTeamMemberNotFound, nil))

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/teammembers/"+testStorageId, strings.NewReader(`{"id":7,"name":"A","role":"eng"}`)),
		"teammember_id", testStorageId,
	)
	w := httptest.NewRecorder()

	handler.UpdateTeamMember(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"TeamMember not found"}`, w.Body.String())
}

func TestTeamMemberHandler_Delete_Success(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("Delete", mock.Anything, testStorageId).Return(nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/teammembers/"+testStorageId, nil), "teammember_id", testStorageId)
	w := httptest.NewRecorder()

	handler.DeleteTeamMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"TeamMember deleted successfully"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestTeamMemberHandler_Delete_InvalidId(t *testing.T) {
	mockService := new(MockTeamMemberService)
	handler := NewTeamMemberHandler(mockService, zap.NewNop())

	mockService.On("Delete", mock.Anything, "123").Return(service.WrapError(service.ErrInvalidTeamMemberId, nil))

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/teammembers/123", nil), "teammember_id", "123")
	w := httptest.NewRecorder()

	handler.DeleteTeamMember(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid TeamMember ID format"}`, w.Body.String())
}
