package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foomo/mockserver/pkg/handler"
	"github.com/foomo/mockserver/pkg/retry"
)

func TestAdminCounters(t *testing.T) {
	counter := retry.NewCounter()
	counter.Bump("/fail-then-ok/a.zip")
	counter.Bump("/fail-then-ok/a.zip")
	counter.Bump("/fail-then-ok/b.zip")

	server := httptest.NewServer(handler.NewAdmin(zaptest.NewLogger(t), counter))
	t.Cleanup(server.Close)

	status, body, header := get(t, server.URL+"/counters")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", header.Get("Content-Type"))

	var counts map[string]int
	require.NoError(t, json.Unmarshal(body, &counts))
	assert.Equal(t, map[string]int{
		"/fail-then-ok/a.zip": 2,
		"/fail-then-ok/b.zip": 1,
	}, counts)
}
