package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/api/middleware"
	"wfl-bus-finder-api-server/internal/auth"
	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/models"
	"wfl-bus-finder-api-server/internal/socket"
	"wfl-bus-finder-api-server/internal/streets"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	store    *database.MemoryBusStore
	verifier *auth.Verifier
	hub      *socket.Hub
}

func newTestServer(t *testing.T, staticDir string) *testServer {
	t.Helper()
	verifier, err := auth.NewVerifierWithCost(
		auth.Credential{Username: "admin", Password: "adminpass"},
		auth.Credential{Username: "superadmin", Password: "superpass"},
		"secret", time.Hour, bcrypt.MinCost,
	)
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.Server.StaticDir = staticDir
	cfg.Maps.GoogleAPIKey = "maps-key"

	store := database.NewMemoryBusStore()
	hub := socket.NewHub()
	return &testServer{
		router:   SetupRouter(cfg, store, verifier, streets.SoMa, hub, nil),
		store:    store,
		verifier: verifier,
		hub:      hub,
	}
}

type reqOpt func(*http.Request)

func basic(user, pass string) reqOpt {
	return func(r *http.Request) { r.SetBasicAuth(user, pass) }
}

func (s *testServer) do(t *testing.T, method, target string, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, o := range opts {
		o(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestStreets(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/streets")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		MainStreets           []string            `json:"main_streets"`
		CrossStreets          map[string][]string `json:"cross_streets"`
		SecondaryCrossStreets map[string][]string `json:"secondary_cross_streets"`
	}](t, w)
	assert.Equal(t, streets.SoMa.MainStreets(), body.MainStreets)
	assert.Equal(t, streets.SoMa.PrimaryCrossStreets("Folsom Street"), body.CrossStreets["Folsom Street"])
	assert.Equal(t, []string{"Main Street"}, body.SecondaryCrossStreets["Bryant Street|The Embarcadero"])
	assert.Equal(t, []string{"4th Street"}, body.SecondaryCrossStreets["*|5th Street"])
}

func TestReportAndListBuses(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/wfl?busNumber=42&main_street=Folsom+Street&primary_cross_street=null&secondary_cross_street=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Bus 42 location saved"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/wfl")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"busNumber":"42","main_street":"Folsom Street"}]`, w.Body.String())
}

func TestReportWithCoordinatesAndCity(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/wfl?busNumber=7&mainStreet=Bryant+Street&latitude=37.78&longitude=-122.39&city=San+Francisco")
	require.Equal(t, http.StatusOK, w.Code)

	buses, err := s.store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, buses, 1)
	assert.Equal(t, "Bryant Street", buses[0].MainStreet)
	assert.Equal(t, "San Francisco", buses[0].City)
	require.NotNil(t, buses[0].Latitude)
	assert.InDelta(t, 37.78, *buses[0].Latitude, 1e-9)
	assert.InDelta(t, -122.39, *buses[0].Longitude, 1e-9)
}

func TestInvalidCoordinatesAreDropped(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/wfl?busNumber=8&latitude=north&longitude=500")
	require.Equal(t, http.StatusOK, w.Code)

	buses, err := s.store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Bus{{BusNumber: "8"}}, buses)
}

func TestReportReplacesPreviousFields(t *testing.T) {
	s := newTestServer(t, "")
	s.do(t, http.MethodGet, "/wfl?busNumber=5&main_street=Folsom+Street&primary_cross_street=2nd+Street")
	s.do(t, http.MethodGet, "/wfl?busNumber=5&main_street=Harrison+Street")

	w := s.do(t, http.MethodGet, "/wfl")
	assert.JSONEq(t, `[{"busNumber":"5","main_street":"Harrison Street"}]`, w.Body.String())
}

func TestEmptyBusNumberLists(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.store.Upsert(context.Background(), models.Bus{BusNumber: "1"}))

	for _, target := range []string{"/wfl?busNumber=", "/wfl?busNumber=%20%20&main_street=Folsom+Street"} {
		w := s.do(t, http.MethodGet, target)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"busNumber":"1"}]`, w.Body.String())
	}
	buses, _ := s.store.ListAll(context.Background())
	assert.Len(t, buses, 1)
}

func TestListSortOrder(t *testing.T) {
	s := newTestServer(t, "")
	for _, n := range []string{"10", "2", "abc", "1"} {
		s.do(t, http.MethodGet, "/wfl?busNumber="+n)
	}
	buses := decode[[]models.Bus](t, s.do(t, http.MethodGet, "/wfl"))
	var got []string
	for _, b := range buses {
		got = append(got, b.BusNumber)
	}
	assert.Equal(t, []string{"abc", "1", "2", "10"}, got)
}

func TestEmptyListIsArray(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/wfl")
	assert.Equal(t, "[]", w.Body.String())
}

func TestAdminVerify(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/admin/verify", basic("admin", "adminpass"))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "admin", body["username"])
	assert.Equal(t, false, body["isSuperadmin"])
	assert.NotEmpty(t, body["token"])

	w = s.do(t, http.MethodGet, "/admin/verify", basic("superadmin", "superpass"))
	assert.Equal(t, true, decode[map[string]any](t, w)["isSuperadmin"])

	w = s.do(t, http.MethodGet, "/admin/verify", basic("admin", "wrongpass"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.BasicRealm, w.Header().Get("WWW-Authenticate"))

	w = s.do(t, http.MethodGet, "/admin/verify")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminPage(t *testing.T) {
	s := newTestServer(t, "")
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/admin").Code)

	for _, path := range []string{"/admin", "/admin/index.html"} {
		w := s.do(t, http.MethodGet, path, basic("admin", "adminpass"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "WFL Bus Finder")
		// The page sends the session token from /admin/verify on delete.
		assert.Contains(t, w.Body.String(), "token = verify.token")
		assert.Contains(t, w.Body.String(), "Authorization: `Bearer ${token}`")
	}
}

func TestGoogleMapsAPIKeyIsPublic(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/admin/google-maps-api-key")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"apiKey":"maps-key"}`, w.Body.String())
}

func seedBuses(t *testing.T, s *testServer, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		require.NoError(t, s.store.Upsert(context.Background(), models.Bus{BusNumber: n}))
	}
}

func TestDeleteAllBusesRequiresSuperadmin(t *testing.T) {
	s := newTestServer(t, "")
	seedBuses(t, s, "1", "2", "3")

	w := s.do(t, http.MethodDelete, "/admin/delete-all-buses", basic("admin", "adminpass"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodDelete, "/admin/delete-all-buses")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	buses, _ := s.store.ListAll(context.Background())
	assert.Len(t, buses, 3)

	w = s.do(t, http.MethodDelete, "/admin/delete-all-buses", basic("superadmin", "superpass"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Deleted 3 bus records","deleted":3}`, w.Body.String())

	buses, _ = s.store.ListAll(context.Background())
	assert.Empty(t, buses)
}

func TestBearerTokenFromVerify(t *testing.T) {
	s := newTestServer(t, "")
	seedBuses(t, s, "1")

	token := decode[map[string]any](t, s.do(t, http.MethodGet, "/admin/verify", basic("admin", "adminpass")))["token"].(string)
	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/admin/verify", bearer).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/admin/delete-all-buses", bearer).Code)
	buses, _ := s.store.ListAll(context.Background())
	assert.Len(t, buses, 1)
}

type fakeArchiver struct {
	buses []models.Bus
	err   error
}

func (f *fakeArchiver) ArchiveBuses(_ context.Context, _ string, buses []models.Bus) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.buses = buses
	return "https://bucket/snap.json", nil
}

func TestDeleteAllArchivesFirst(t *testing.T) {
	s := newTestServer(t, "")
	archiver := &fakeArchiver{}
	s.router = SetupRouter(config.Config{}, s.store, s.verifier, streets.SoMa, s.hub, archiver)
	seedBuses(t, s, "2", "1")

	w := s.do(t, http.MethodDelete, "/admin/delete-all-buses", basic("superadmin", "superpass"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, archiver.buses, 2)
	assert.Equal(t, "1", archiver.buses[0].BusNumber)
}

func TestDeleteAllKeepsRecordsWhenArchiveFails(t *testing.T) {
	s := newTestServer(t, "")
	s.router = SetupRouter(config.Config{}, s.store, s.verifier, streets.SoMa, s.hub, &fakeArchiver{err: assert.AnError})
	seedBuses(t, s, "1")

	w := s.do(t, http.MethodDelete, "/admin/delete-all-buses", basic("superadmin", "superpass"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	buses, _ := s.store.ListAll(context.Background())
	assert.Len(t, buses, 1)
}

func TestNotFoundWithoutFrontend(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	w := s.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "WFL Bus Finder API")

	w = s.do(t, http.MethodGet, "/some/client/route")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app shell</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	s := newTestServer(t, dir)

	for _, path := range []string{"/", "/admin/input", "/map"} {
		w := s.do(t, http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "app shell", path)
	}

	w := s.do(t, http.MethodGet, "/assets/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/wfl/unknown").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/map").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/healthz")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	s.do(t, http.MethodGet, "/wfl?busNumber=9")
	w = s.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wfl_bus_reports_total")
	assert.Contains(t, w.Body.String(), "wfl_api_requests_total")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodGet, "/wfl", func(r *http.Request) { r.Header.Set("Origin", "https://example.org") })
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketReceivesReports(t *testing.T) {
	s := newTestServer(t, "")
	seedBuses(t, s, "1")
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/wfl/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snapshot models.BusEvent
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, models.EventSnapshot, snapshot.Type)
	require.Len(t, snapshot.Buses, 1)

	require.Eventually(t, func() bool { return s.hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/wfl?busNumber=12&main_street=Bryant+Street")
	require.NoError(t, err)
	resp.Body.Close()

	var ev models.BusEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, models.EventBusReported, ev.Type)
	require.NotNil(t, ev.Bus)
	assert.Equal(t, "12", ev.Bus.BusNumber)
	assert.Equal(t, "Bryant Street", ev.Bus.MainStreet)
}
