package gis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupElevationRequiresQuery(t *testing.T) {
	svc := &Service{BaseURL: "http://example.invalid"}
	_, err := svc.LookupElevation(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoQuery)
}

func TestLookupElevationParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		assert.Equal(t, "123 Lakeshore Dr", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elevation_feet": 7052.4, "parcel_number": "081-220-0340"}`))
	}))
	defer server.Close()

	svc := &Service{BaseURL: server.URL}
	result, err := svc.LookupElevation(context.Background(), "123 Lakeshore Dr")
	require.NoError(t, err)
	require.NotNil(t, result.ElevationFeet)
	assert.Equal(t, 7052.4, *result.ElevationFeet)
	assert.Equal(t, "081-220-0340", result.ParcelNumber)
}

func TestLookupElevationAlternateKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elevation": 7040.0}`))
	}))
	defer server.Close()

	svc := &Service{BaseURL: server.URL}
	result, err := svc.LookupElevation(context.Background(), "parcel 42")
	require.NoError(t, err)
	require.NotNil(t, result.ElevationFeet)
	assert.Equal(t, 7040.0, *result.ElevationFeet)
}

func TestLookupElevationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream down`))
	}))
	defer server.Close()

	svc := &Service{BaseURL: server.URL}
	_, err := svc.LookupElevation(context.Background(), "123 Lakeshore Dr")
	assert.ErrorContains(t, err, "status 502")
}

func TestLookupElevationCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"elevation_feet": 7045.1}`))
	}))
	defer server.Close()

	svc := &Service{BaseURL: server.URL, Rdb: rdb}

	first, err := svc.LookupElevation(context.Background(), "123 Lakeshore Dr")
	require.NoError(t, err)
	second, err := svc.LookupElevation(context.Background(), "  123 LAKESHORE DR ")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, *first.ElevationFeet, *second.ElevationFeet)

	mr.FastForward(25 * time.Hour)
	_, err = svc.LookupElevation(context.Background(), "123 Lakeshore Dr")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestFormatElevation(t *testing.T) {
	assert.Equal(t, "unknown", FormatElevation(nil))
	v := 7047.0
	assert.Equal(t, "7047.0 ft", FormatElevation(&v))
}
