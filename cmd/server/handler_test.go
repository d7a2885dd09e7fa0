package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tzgroups/internal/config"
	"github.com/mmynk/tzgroups/internal/service"
	"github.com/mmynk/tzgroups/internal/strategy"
)

func testConfig() *config.Config {
	return &config.Config{Port: 8080, LogLevel: "info", Workers: 1, Strategy: strategy.KindRandomSearch}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandlerHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	server := httptest.NewServer(newHandler(testConfig(), reg))
	defer server.Close()

	status, body := get(t, server.URL+"/healthz")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok\n", body)

	client := service.NewGroupingServiceClient(server.Client(), server.URL)
	resp, err := client.CreateGroups(context.Background(), connect.NewRequest(&service.CreateGroupsRequest{
		Tokens:    []string{"VGVzdDF8QWZyaWNhL0FiaWRqYW58MTkyMHwwfDB8MHwwfDA=", "bogus"},
		GroupSize: 2,
	}))
	require.NoError(t, err)
	require.Equal(t, "random", resp.Msg.Strategy)
	require.Equal(t, 1, resp.Msg.Dropped)

	status, body = get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `tzgroups_grouping_runs_total{strategy="random"} 1`)
	require.Contains(t, body, "tzgroups_grouping_dropped_tokens_total 1")
}

func TestHandlerWithoutMetrics(t *testing.T) {
	server := httptest.NewServer(newHandler(testConfig(), nil))
	defer server.Close()

	status, _ := get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusNotFound, status)
}

func TestCORSPreflight(t *testing.T) {
	server := httptest.NewServer(newHandler(testConfig(), nil))
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL+service.CreateGroupsProcedure, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), "X-Request-Id")
}
