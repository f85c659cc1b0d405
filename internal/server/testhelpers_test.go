package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/server/ratelimit"
	"github.com/jonathan/fleet-estimator/internal/types"
)

// memoryStore is an in-memory VehicleStore.
type memoryStore struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]types.Vehicle
	err      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{vehicles: make(map[uuid.UUID]types.Vehicle)}
}

func (m *memoryStore) CreateVehicle(_ context.Context, vehicle *types.Vehicle) (*types.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.vehicles[vehicle.ID] = *vehicle
	stored := *vehicle
	return &stored, nil
}

func (m *memoryStore) GetVehicle(_ context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (*types.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.vehicles[vehicleID]
	if !ok || v.UserID != userID || v.FleetID != fleetID {
		return nil, nil
	}
	return &v, nil
}

func (m *memoryStore) ListVehicles(_ context.Context, userID uuid.UUID, fleetID string) ([]types.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	vehicles := []types.Vehicle{}
	for _, v := range m.vehicles {
		if v.UserID == userID && v.FleetID == fleetID {
			vehicles = append(vehicles, v)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
	})
	return vehicles, nil
}

func (m *memoryStore) DeleteVehicle(_ context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	v, ok := m.vehicles[vehicleID]
	if !ok || v.UserID != userID || v.FleetID != fleetID {
		return false, nil
	}
	delete(m.vehicles, vehicleID)
	return true, nil
}

// stubModel replays a canned answer and records requests.
type stubModel struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.StructuredRequest
}

func (s *stubModel) GenerateStructured(_ context.Context, req llm.StructuredRequest, _ llm.ModelTier) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.response, s.err
}

func (s *stubModel) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type testEnv struct {
	server  *Server
	handler http.Handler
	store   *memoryStore
	model   *stubModel
	jwt     *JWTService
	userID  uuid.UUID
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, Deps{
		Store:     newMemoryStore(),
		Model:     &stubModel{response: `{"estimatedCost": 1200, "costBreakdown": "- Bumper: $400\n- Labor: $800"}`},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
}

func newTestEnvWith(t *testing.T, deps Deps) *testEnv {
	t.Helper()

	if deps.JWT == nil {
		deps.JWT = setupTestJWTService(t, 24)
	}
	srv := NewWithDeps(Config{FleetID: "test_fleet", CacheSize: 16}, deps)
	t.Cleanup(srv.Close)

	userID := uuid.New()
	token, err := deps.JWT.GenerateToken(userID)
	require.NoError(t, err)

	env := &testEnv{
		server:  srv,
		handler: srv.Handler(),
		jwt:     deps.JWT,
		userID:  userID,
		token:   token,
	}
	env.store, _ = deps.Store.(*memoryStore)
	env.model, _ = deps.Model.(*stubModel)
	return env
}

// do sends an authenticated request with an optional JSON body.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.doWithToken(t, e.token, method, path, body)
}

func (e *testEnv) doWithToken(t *testing.T, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
