package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tinytodo/internal/db"
	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/metrics"
	"github.com/balkashynov/tinytodo/internal/settings"
)

const testToken = "s3cret"

func newTestServer(t *testing.T) (*httptest.Server, *metrics.PrometheusRecorder) {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "server.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := lists.NewManager(db.NewListStore(gdb), settings.NewFileStore(t.TempDir()), lists.WithLogger(logger))
	recorder := metrics.NewPrometheusRecorder(nil)

	srv := New(manager, Options{
		Gate:           TokenGate{Token: testToken},
		Logger:         logger,
		Recorder:       recorder,
		MetricsHandler: recorder.Handler(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, recorder
}

func do(t *testing.T, ts *httptest.Server, method, path, body string, authorized bool) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func decode(t *testing.T, body string) lists.Response {
	t.Helper()

	var resp lists.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func createList(t *testing.T, ts *httptest.Server, name string) lists.View {
	t.Helper()

	status, body := do(t, ts, http.MethodPost, "/api/lists/", `{"name":`+strconv.Quote(name)+`}`, true)
	require.Equal(t, http.StatusCreated, status, body)

	resp := decode(t, body)
	require.Len(t, resp.List, 1)
	return resp.List[0]
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestCreateList(t *testing.T) {
	ts, _ := newTestServer(t)

	v := createList(t, ts, " Groceries ")
	assert.Equal(t, "Groceries", v.Name)
	assert.Positive(t, v.ID)
}

func TestWriteRequiresToken(t *testing.T) {
	ts, _ := newTestServer(t)
	v := createList(t, ts, "Mine")
	id := strconv.FormatInt(v.ID, 10)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/lists/", `{"name":"x"}`},
		{http.MethodPut, "/api/lists/", `{"action":"order","order":[1]}`},
		{http.MethodPut, "/api/lists/" + id, `{"action":"rename","name":"y"}`},
		{http.MethodPut, "/api/lists/" + id, `not json`},
		{http.MethodDelete, "/api/lists/" + id, ""},
	}
	for _, tc := range cases {
		status, body := do(t, ts, tc.method, tc.path, tc.body, false)
		assert.Equal(t, http.StatusForbidden, status, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"access denied"}`, body)
	}

	status, body := do(t, ts, http.MethodGet, "/api/lists/"+id, "", true)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"name":"Mine"`)
}

func TestAnonymousReadsPublishedOnly(t *testing.T) {
	ts, _ := newTestServer(t)
	private := createList(t, ts, "Private")
	public := createList(t, ts, "Public")

	status, body := do(t, ts, http.MethodPut, "/api/lists/"+strconv.FormatInt(public.ID, 10), `{"action":"publish","publish":1}`, true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":1}`, body)

	status, body = do(t, ts, http.MethodGet, "/api/lists/", "", false)
	require.Equal(t, http.StatusOK, status)
	resp := decode(t, body)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.List, 1)
	assert.Equal(t, public.ID, resp.List[0].ID)

	status, _ = do(t, ts, http.MethodGet, "/api/lists/"+strconv.FormatInt(public.ID, 10), "", false)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, ts, http.MethodGet, "/api/lists/"+strconv.FormatInt(private.ID, 10), "", false)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = do(t, ts, http.MethodGet, "/api/lists/", "", true)
	require.Equal(t, http.StatusOK, status)
	resp = decode(t, body)
	assert.Equal(t, int64(3), resp.Total)
	assert.True(t, resp.List[0].IsAllTasks())
}

func TestGetMissingList(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/api/lists/77", "", true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "null", strings.TrimSpace(body))

	// anonymous callers cannot tell a missing list from a private one
	status, _ = do(t, ts, http.MethodGet, "/api/lists/77", "", false)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestGetAllTasksList(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/api/lists/-1", "", true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":-1,"name":"All tasks","sort":3,"published":0,"showCompl":1,"showNotes":0,"hidden":1}`, body)
}

func TestActions(t *testing.T) {
	ts, _ := newTestServer(t)
	v := createList(t, ts, "Work")
	path := "/api/lists/" + strconv.FormatInt(v.ID, 10)

	status, body := do(t, ts, http.MethodPut, path, `{"action":"rename","name":"Job"}`, true)
	require.Equal(t, http.StatusOK, status)
	resp := decode(t, body)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "Job", resp.List[0].Name)

	for _, action := range []string{
		`{"action":"sort","sort":"102"}`,
		`{"action":"showNotes","shownotes":true}`,
		`{"action":"showCompleted","showcompleted":1}`,
		`{"action":"hide","hide":"1"}`,
	} {
		status, body = do(t, ts, http.MethodPut, path, action, true)
		require.Equal(t, http.StatusOK, status, action)
		assert.JSONEq(t, `{"total":1}`, body, action)
	}

	status, body = do(t, ts, http.MethodGet, path, "", true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":`+strconv.FormatInt(v.ID, 10)+`,"name":"Job","sort":102,"published":0,"showCompl":1,"showNotes":1,"hidden":1}`, body)

	status, body = do(t, ts, http.MethodPut, path, `{"action":"clearCompleted"}`, true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":0}`, body)
}

func TestUnknownActionIsNoop(t *testing.T) {
	ts, _ := newTestServer(t)
	v := createList(t, ts, "Stable")

	status, body := do(t, ts, http.MethodPut, "/api/lists/"+strconv.FormatInt(v.ID, 10), `{"action":"explode"}`, true)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":0}`, body)

	status, body = do(t, ts, http.MethodPut, "/api/lists/", `{}`, true)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":0}`, body)
}

func TestBadBody(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodPost, "/api/lists/", `{"name":`, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"invalid request body"}`, body)

	status, _ = do(t, ts, http.MethodPut, "/api/lists/1", `[1,`, true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrder(t *testing.T) {
	ts, _ := newTestServer(t)
	a := createList(t, ts, "a")
	b := createList(t, ts, "b")
	c := createList(t, ts, "c")

	order := `{"action":"order","order":[` + strconv.FormatInt(c.ID, 10) + `,` + strconv.FormatInt(a.ID, 10) + `,` + strconv.FormatInt(b.ID, 10) + `]}`
	status, body := do(t, ts, http.MethodPut, "/api/lists/", order, true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":1}`, body)

	_, body = do(t, ts, http.MethodGet, "/api/lists/", "", true)
	resp := decode(t, body)
	require.Len(t, resp.List, 4)
	assert.Equal(t, []int64{-1, c.ID, a.ID, b.ID}, []int64{resp.List[0].ID, resp.List[1].ID, resp.List[2].ID, resp.List[3].ID})

	for _, bad := range []string{
		`{"action":"order"}`,
		`{"action":"order","order":"1,2"}`,
		`{"action":"order","order":{"first":1}}`,
	} {
		status, body = do(t, ts, http.MethodPut, "/api/lists/", bad, true)
		assert.Equal(t, http.StatusOK, status, bad)
		assert.JSONEq(t, `{"total":0}`, body, bad)
	}
}

func TestDelete(t *testing.T) {
	ts, _ := newTestServer(t)
	v := createList(t, ts, "Gone")
	path := "/api/lists/" + strconv.FormatInt(v.ID, 10)

	status, body := do(t, ts, http.MethodDelete, path, "", true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":1}`, body)

	status, body = do(t, ts, http.MethodDelete, path, "", true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":0}`, body)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	createList(t, ts, "Counted")
	do(t, ts, http.MethodPost, "/api/lists/", `{"name":"x"}`, false)

	status, body := do(t, ts, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `tinytodo_list_operations_total{op="create",result="success"} 1`)
	assert.Contains(t, body, `tinytodo_list_operations_total{op="create",result="forbidden"} 1`)
	assert.Contains(t, body, `tinytodo_list_rows_affected_total{op="create"} 1`)
}

func TestTokenGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, TokenGate{}.LoggedIn(req))
	assert.False(t, TokenGate{Token: "t"}.LoggedIn(req))

	req.Header.Set("Authorization", "Bearer t")
	assert.True(t, TokenGate{Token: "t"}.LoggedIn(req))

	req.Header.Set("Authorization", "Bearer nope")
	assert.False(t, TokenGate{Token: "t"}.LoggedIn(req))
}
