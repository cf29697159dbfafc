package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/shopdesk-reports/internal/auth/jwt"
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/jekabolt/shopdesk-reports/internal/metrics"
	"github.com/jekabolt/shopdesk-reports/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) LoadSnapshot(ctx context.Context, period entity.TimeRange) (*entity.Snapshot, error) {
	args := m.Called(ctx, period)
	s, _ := args.Get(0).(*entity.Snapshot)
	return s, args.Error(1)
}

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		SalesOrders: []entity.Record{
			{"id": "v1", "dataCriacao": "2024-01-05T10:00:00Z", "status": "concluida",
				"itens": []any{map[string]any{"produtoId": "p1", "quantidade": 2, "preco": 50}}},
			{"id": "v2", "dataCriacao": "2024-01-06T10:00:00Z", "status": "pendente",
				"itens": []any{map[string]any{"nome": "Capa para celular Galaxy A54", "quantidade": 1, "preco": 20}}},
		},
		Products: []entity.Record{
			{"id": "p1", "nome": "Película", "estoque": 4},
		},
	}
}

func newTestServer(t *testing.T, src *mockSource, auth *jwtauth.JWTAuth) *Server {
	t.Helper()
	c := metrics.DefaultConfig()
	c.Timezone = "UTC"
	e, err := metrics.New(c, nil)
	require.NoError(t, err)

	s := New(&Config{AllowedOrigins: []string{"https://console.example.com"}},
		ChartConfig{LabelBudget: 10}, e, src, auth)
	s.now = func() time.Time { return time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC) }
	return s
}

func january() entity.TimeRange {
	return entity.DayRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &mockSource{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type pingSource struct {
	mockSource
}

func (p *pingSource) Ping(ctx context.Context) error {
	return p.Called(ctx).Error(0)
}

func TestHealthzPingsSource(t *testing.T) {
	src := &pingSource{}
	src.On("Ping", mock.Anything).Return(nil).Once()
	src.On("Ping", mock.Anything).Return(assert.AnError).Once()

	c := metrics.DefaultConfig()
	e, err := metrics.New(c, nil)
	require.NoError(t, err)
	h := New(&Config{}, ChartConfig{}, e, src, nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
	src.AssertExpectations(t)
}

func TestGetReport(t *testing.T) {
	src := &mockSource{}
	src.On("LoadSnapshot", mock.Anything, january()).Return(testSnapshot(), nil).Once()
	s := newTestServer(t, src, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?from=2024-01-01&to=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rep entity.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Len(t, rep.DailySales.Days, 31)
	assert.Equal(t, "120", rep.DailySales.Stats.TotalSales.String())
	src.AssertExpectations(t)
}

func TestGetReportDefaultPeriod(t *testing.T) {
	src := &mockSource{}
	want := entity.DayRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	src.On("LoadSnapshot", mock.Anything, want).Return(&entity.Snapshot{}, nil).Once()
	s := newTestServer(t, src, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	src.AssertExpectations(t)
}

func TestGetReportBadPeriod(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"malformed from", "from=01/01/2024"},
		{"malformed to", "to=2024-13-01"},
		{"inverted", "from=2024-02-01&to=2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			s := newTestServer(t, src, nil)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			src.AssertNotCalled(t, "LoadSnapshot", mock.Anything, mock.Anything)
		})
	}
}

func TestGetReportSourceError(t *testing.T) {
	src := &mockSource{}
	src.On("LoadSnapshot", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	s := newTestServer(t, src, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetSectionChart(t *testing.T) {
	src := &mockSource{}
	src.On("LoadSnapshot", mock.Anything, january()).Return(testSnapshot(), nil)
	s := newTestServer(t, src, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/reports/produtos/chart?from=2024-01-01&to=2024-01-31&shape=pie&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp chartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "produtos", resp.Section)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, "Película", resp.Points[0].Name)
	assert.Equal(t, 2.0, resp.Points[0].Value)
	assert.Equal(t, "Capa para ...", resp.Points[1].Name)
	assert.Equal(t, "Capa para celular Galaxy A54", resp.Points[1].FullName)
}

func TestGetSectionChartErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code int
	}{
		{"unknown section", "/api/reports/estoque/chart", http.StatusNotFound},
		{"unknown shape", "/api/reports/produtos/chart?shape=radar", http.StatusBadRequest},
		{"bad limit", "/api/reports/produtos/chart?limit=ten", http.StatusBadRequest},
		{"negative limit", "/api/reports/produtos/chart?limit=-3", http.StatusBadRequest},
		{"unknown section with bad period", "/api/reports/estoque/chart?from=ontem", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			s := newTestServer(t, src, nil)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			src.AssertNotCalled(t, "LoadSnapshot", mock.Anything, mock.Anything)
		})
	}
}

func TestAuth(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("secret"), nil)
	src := &mockSource{}
	src.On("LoadSnapshot", mock.Anything, mock.Anything).Return(&entity.Snapshot{}, nil)
	s := newTestServer(t, src, ja)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := jwt.NewToken(ja, time.Hour, "gerente")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	c := metrics.DefaultConfig()
	c.Timezone = "UTC"
	e, err := metrics.New(c, nil)
	require.NoError(t, err)
	src := &mockSource{}
	src.On("LoadSnapshot", mock.Anything, mock.Anything).Return(&entity.Snapshot{}, nil)

	s := New(&Config{RateLimit: ratelimit.Config{Window: time.Minute, Max: 1}}, ChartConfig{}, e, src, nil)
	h := s.Handler()

	get := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, get("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, get("10.0.0.2:5000"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://console.example.com"}
	assert.True(t, isOriginAllowed("http://localhost:5173", allowed))
	assert.True(t, isOriginAllowed("https://console.example.com", allowed))
	assert.False(t, isOriginAllowed("https://evil.example.com", allowed))
	assert.True(t, isOriginAllowed("https://any.example.com", []string{"*"}))
}
