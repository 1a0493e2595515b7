package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"utsav/internal/halls/repository"
	"utsav/internal/halls/service"
	"utsav/pkg/config"
	"utsav/pkg/logger"
	"utsav/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *httprouter.Router {
	cfg := &config.Config{Log: logger.Discard()}
	svc := service.NewHallService(repository.NewMemoryHallRepository(repository.SeedHalls()), cfg)
	router := httprouter.New()
	NewHallHandler(svc, cfg.Log).RegisterRoutes(router)
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestList_FiltersByCity(t *testing.T) {
	rec := get(newRouter(), "/api/halls?city=%20JAIPUR%20")
	require.Equal(t, http.StatusOK, rec.Code)

	var halls []model.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &halls))
	require.Len(t, halls, 2)
	for _, h := range halls {
		assert.Equal(t, "Jaipur", h.City)
	}
}

func TestList_AllWithoutCity(t *testing.T) {
	rec := get(newRouter(), "/api/halls")
	require.Equal(t, http.StatusOK, rec.Code)

	var halls []model.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &halls))
	assert.Len(t, halls, len(repository.SeedHalls()))
}

func TestList_UnknownCityIsEmptyArray(t *testing.T) {
	rec := get(newRouter(), "/api/halls?city=Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetByID(t *testing.T) {
	router := newRouter()

	rec := get(router, "/api/halls/m1")
	require.Equal(t, http.StatusOK, rec.Code)
	var hall model.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hall))
	assert.Equal(t, "The Sea View Banquet", hall.Name)
	assert.Equal(t, float64(150000), hall.PricePerSlot)

	rec = get(router, "/api/halls/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgNotFound)
}
