package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	"github.com/BruksfildServices01/lab-scheduler/internal/config"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/handlers"
	"github.com/BruksfildServices01/lab-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/lab-scheduler/internal/infra/snapshot"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}

type testServer struct {
	engine *gin.Engine
	file   *snapshot.JSONFile
	store  *repository.AppointmentStore
}

func testConfig() *config.Config {
	return &config.Config{
		AllowedOrigin:   "http://localhost:5173",
		RateLimitPerMin: 100000,
		RateLimitBurst:  100000,
	}
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...repository.StoreOption) *testServer {
	t.Helper()

	file := snapshot.NewJSONFile(filepath.Join(t.TempDir(), "agendamentos.json"))
	store := repository.NewAppointmentStore(file, opts...)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, store, nopAuditor{}, cfg, zap.NewNop())

	return &testServer{engine: r, file: file, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rw := httptest.NewRecorder()
	s.engine.ServeHTTP(rw, req)
	return rw
}

func decode[T any](t *testing.T, rw *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rw.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rw.Body.String(), err)
	}
	return v
}

var lab3 = map[string]string{
	"tipo":        "Lab",
	"nome":        "Lab 3",
	"data":        "2024-05-01",
	"horaInicio":  "08:00",
	"horaTermino": "10:00",
	"responsavel": "Ana",
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	rw := s.do(t, http.MethodGet, "/", nil)
	if rw.Code != http.StatusOK || rw.Body.String() != "Sistema de Agendamento" {
		t.Fatalf("unexpected root response: %d %q", rw.Code, rw.Body.String())
	}

	rw = s.do(t, http.MethodGet, "/health", nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
}

func TestHealthReportsFailingChecks(t *testing.T) {
	file := snapshot.NewJSONFile(filepath.Join(t.TempDir(), "agendamentos.json"))
	store := repository.NewAppointmentStore(file)

	r := gin.New()
	RegisterRoutes(r, store, nopAuditor{}, testConfig(), zap.NewNop(), handlers.HealthCheck{
		Name:  "redis",
		Check: func(context.Context) error { return errors.New("connection refused") },
	})

	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rw.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rw.Code)
	}
}

func TestCreateExample(t *testing.T) {
	s := newTestServer(t, testConfig())

	rw := s.do(t, http.MethodPost, "/appointments", lab3)
	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rw.Code, rw.Body.String())
	}

	got := decode[map[string]string](t, rw)
	if got["id"] == "" {
		t.Fatal("expected generated id")
	}
	for k, v := range lab3 {
		if got[k] != v {
			t.Fatalf("field %s: expected %q, got %q", k, v, got[k])
		}
	}

	rw = s.do(t, http.MethodGet, "/appointments/"+got["id"], nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	if fetched := decode[map[string]string](t, rw); !reflect.DeepEqual(fetched, got) {
		t.Fatalf("GET mismatch:\n got %v\nwant %v", fetched, got)
	}
}

func TestListReturnsCreationOrder(t *testing.T) {
	s := newTestServer(t, testConfig())

	rw := s.do(t, http.MethodGet, "/appointments", nil)
	if rw.Code != http.StatusOK || rw.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %d %q", rw.Code, rw.Body.String())
	}

	var ids []string
	for i := 0; i < 4; i++ {
		rw := s.do(t, http.MethodPost, "/appointments", lab3)
		ids = append(ids, decode[models.Appointment](t, rw).ID)
	}

	rw = s.do(t, http.MethodGet, "/appointments", nil)
	list := decode[[]models.Appointment](t, rw)
	if len(list) != len(ids) {
		t.Fatalf("expected %d records, got %d", len(ids), len(list))
	}
	for i := range ids {
		if list[i].ID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], list[i].ID)
		}
	}
	if rw.Header().Get("X-Total-Count") != "4" {
		t.Fatalf("unexpected total header %q", rw.Header().Get("X-Total-Count"))
	}
}

func TestUnknownIDReturns404(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.do(t, http.MethodPost, "/appointments", lab3)
	before := s.do(t, http.MethodGet, "/appointments", nil).Body.String()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rw := s.do(t, method, "/appointments/nao-existe", lab3)
		if rw.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", method, rw.Code)
		}
		if rw.Body.String() != "Agendamento não encontrado" {
			t.Fatalf("%s: unexpected body %q", method, rw.Body.String())
		}
	}

	after := s.do(t, http.MethodGet, "/appointments", nil).Body.String()
	if before != after {
		t.Fatalf("collection changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestPutReplacesAllFields(t *testing.T) {
	s := newTestServer(t, testConfig())
	created := decode[models.Appointment](t, s.do(t, http.MethodPost, "/appointments", lab3))

	rw := s.do(t, http.MethodPut, "/appointments/"+created.ID, map[string]string{
		"id":   "forjado",
		"tipo": "Sala",
		"nome": "Sala 12",
	})
	if rw.Code != http.StatusOK || rw.Body.String() != "Agendamento alterado com sucesso" {
		t.Fatalf("unexpected PUT response: %d %q", rw.Code, rw.Body.String())
	}

	got := decode[models.Appointment](t, s.do(t, http.MethodGet, "/appointments/"+created.ID, nil))
	want := models.Appointment{ID: created.ID, Tipo: "Sala", Nome: "Sala 12"}
	if got != want {
		t.Fatalf("expected full replace %+v, got %+v", want, got)
	}

	onDisk, err := s.file.Load()
	if err != nil {
		t.Fatal(err)
	}
	inMemory, _ := s.store.List(context.Background())
	if !reflect.DeepEqual(onDisk, inMemory) {
		t.Fatalf("disk and memory diverged:\ndisk %+v\nmem  %+v", onDisk, inMemory)
	}
}

func TestPatchUpdatesSubset(t *testing.T) {
	s := newTestServer(t, testConfig())
	created := decode[models.Appointment](t, s.do(t, http.MethodPost, "/appointments", lab3))

	rw := s.do(t, http.MethodPatch, "/appointments/"+created.ID, map[string]string{"responsavel": "Bruno"})
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}

	got := decode[models.Appointment](t, rw)
	want := created
	want.Responsavel = "Bruno"
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	s := newTestServer(t, testConfig())
	created := decode[models.Appointment](t, s.do(t, http.MethodPost, "/appointments", lab3))

	rw := s.do(t, http.MethodDelete, "/appointments/"+created.ID, nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	if want := "Agendamento " + created.ID + " removido com sucesso"; rw.Body.String() != want {
		t.Fatalf("expected %q, got %q", want, rw.Body.String())
	}

	if rw := s.do(t, http.MethodGet, "/appointments/"+created.ID, nil); rw.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rw.Code)
	}
	if body := s.do(t, http.MethodGet, "/appointments", nil).Body.String(); body != "[]" {
		t.Fatalf("expected empty list, got %s", body)
	}
}

func TestMalformedAndEmptyBodies(t *testing.T) {
	s := newTestServer(t, testConfig())

	rw := s.do(t, http.MethodPost, "/appointments", "{tipo:")
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rw.Code)
	}
	if s.store.Len() != 0 {
		t.Fatal("malformed body must not create a record")
	}

	rw = s.do(t, http.MethodPost, "/appointments", nil)
	if rw.Code != http.StatusCreated {
		t.Fatalf("expected empty body to create a blank record, got %d", rw.Code)
	}
	blank := decode[models.Appointment](t, rw)
	if blank.ID == "" || blank.Nome != "" {
		t.Fatalf("unexpected blank record %+v", blank)
	}
}

func TestAliasPathSharesCollection(t *testing.T) {
	s := newTestServer(t, testConfig())
	created := decode[models.Appointment](t, s.do(t, http.MethodPost, "/agendamentos", lab3))

	rw := s.do(t, http.MethodGet, "/appointments/"+created.ID, nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected record created via alias to be visible, got %d", rw.Code)
	}
}

func TestConflictCheck(t *testing.T) {
	clash := map[string]string{}
	for k, v := range lab3 {
		clash[k] = v
	}
	clash["horaInicio"] = "09:00"
	clash["horaTermino"] = "11:00"

	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, testConfig())
		s.do(t, http.MethodPost, "/appointments", lab3)
		if rw := s.do(t, http.MethodPost, "/appointments", clash); rw.Code != http.StatusCreated {
			t.Fatalf("expected overlap to be accepted, got %d", rw.Code)
		}
	})

	t.Run("enabled", func(t *testing.T) {
		s := newTestServer(t, testConfig(), repository.WithGuard(domain.NoOverlap))
		s.do(t, http.MethodPost, "/appointments", lab3)

		rw := s.do(t, http.MethodPost, "/appointments", clash)
		if rw.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rw.Code)
		}
		if body := decode[map[string]string](t, rw); body["error_code"] != "time_conflict" {
			t.Fatalf("unexpected body %v", body)
		}
		if s.store.Len() != 1 {
			t.Fatalf("conflicting record was stored")
		}
	})
}

func TestWritesRequireTokenWhenAuthEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "segredo"
	s := newTestServer(t, cfg)

	if rw := s.do(t, http.MethodPost, "/appointments", lab3); rw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rw.Code)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "coordenacao",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatal(err)
	}

	rw := s.do(t, http.MethodPost, "/appointments", lab3, "Authorization", "Bearer "+token)
	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d", rw.Code)
	}

	if rw := s.do(t, http.MethodGet, "/appointments", nil); rw.Code != http.StatusOK {
		t.Fatalf("reads stay public, got %d", rw.Code)
	}
}
