package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadscope/api/internal/dataset"
	"github.com/roadscope/api/internal/logger"
)

// testAccidentsCSV and testVehiclesCSV are minimal but complete source files:
// two accidents, one of which has two vehicles.
var testAccidentsCSV = strings.Join([]string{
	strings.Join([]string{
		dataset.ColAccidentIndex, dataset.ColLatitude, dataset.ColLongitude,
		dataset.ColDistrict, dataset.ColUrbanRural, dataset.ColSeverity,
		dataset.ColHour, dataset.ColMonth, dataset.ColYear,
		dataset.ColDayOfWeek, dataset.ColCasualties,
		dataset.ColJunctionDetail, dataset.ColJunctionControl,
		dataset.ColPedHuman, dataset.ColPedPhysical,
	}, ","),
	"A1,53.8,-1.5,Leeds,Urban,Fatal,8,1,2019,Monday,2,Crossroads,Stop sign,0,0",
	"A2,54.0,-2.0,Craven,Rural,Slight,17,7,2020,Sunday,1,Not at junction,,0,0",
}, "\n") + "\n"

var testVehiclesCSV = strings.Join([]string{
	strings.Join([]string{
		dataset.ColAccidentIndex, dataset.ColVehicleType, dataset.ColAgeBand,
		dataset.ColJourneyPurpose, dataset.ColSexOfDriver,
	}, ","),
	"A1,Car,26 - 35,Commuting to/from work,Male",
	"A1,Car,66 - 75,Other,Female",
}, "\n") + "\n"

// newTestSources writes both source files into a temp dir.
func newTestSources(t *testing.T) dataset.Sources {
	t.Helper()
	dir := t.TempDir()
	src := dataset.Sources{
		AccidentsPath: filepath.Join(dir, "accidents.csv"),
		VehiclesPath:  filepath.Join(dir, "vehicles.csv"),
	}
	require.NoError(t, os.WriteFile(src.AccidentsPath, []byte(testAccidentsCSV), 0o644))
	require.NoError(t, os.WriteFile(src.VehiclesPath, []byte(testVehiclesCSV), 0o644))
	return src
}

func newTestStore(t *testing.T, src dataset.Sources) *dataset.Store {
	t.Helper()
	return dataset.NewStore(src, 0, logger.New("development"), nil)
}

func setupHealthRouter(store *dataset.Store, env string) *gin.Engine {
	router := gin.New()
	handler := NewHealthHandler(store, env)
	router.GET("/health", handler.Health)
	router.GET("/health/ready", handler.Ready)
	router.GET("/api/v1/info", handler.Info)
	return router
}

func TestHealthHandler_Health(t *testing.T) {
	store := newTestStore(t, newTestSources(t))
	router := setupHealthRouter(store, "test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
}

func TestHealthHandler_ReadyBeforeLoad(t *testing.T) {
	store := newTestStore(t, newTestSources(t))
	router := setupHealthRouter(store, "test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var got ReadyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "not_ready", got.Status)
	assert.Equal(t, "not_loaded", got.Dataset)
}

func TestHealthHandler_ReadyAfterLoad(t *testing.T) {
	store := newTestStore(t, newTestSources(t))
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	router := setupHealthRouter(store, "test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got ReadyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ready", got.Status)
	assert.Equal(t, "loaded", got.Dataset)
	assert.Equal(t, 3, got.Rows, "A1 fans out to two rows, A2 to one")
}

func TestHealthHandler_Info(t *testing.T) {
	store := newTestStore(t, newTestSources(t))
	router := setupHealthRouter(store, "test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, APIVersion, got.Version)
	assert.Equal(t, "test", got.Environment)
	assert.Equal(t, "not_loaded", got.Dataset)
	assert.NotEmpty(t, got.Uptime)
}

func TestFormatUptime(t *testing.T) {
	testCases := []struct {
		duration time.Duration
		want     string
	}{
		{duration: 5 * time.Second, want: "0h 0m 5s"},
		{duration: 90 * time.Minute, want: "1h 30m 0s"},
		{duration: 25 * time.Hour, want: "1d 1h 0m 0s"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, formatUptime(tc.duration))
	}
}
