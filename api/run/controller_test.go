package runapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-explorer/api"
	"github.com/beka-birhanu/vinom-explorer/api/i"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/snapshot"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(string) {}
func (nopLogger) Debug(string) {}

type fixture struct {
	runs    *service.RunManager
	handler http.Handler
}

func newFixture(t *testing.T, auth gin.HandlerFunc) *fixture {
	t.Helper()
	runs, err := service.NewRunManager(&service.Config{Store: snapshot.NewMemoryRunStore(), Logger: nopLogger{}})
	require.NoError(t, err)
	controller, err := NewRunController(runs, nopLogger{})
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{controller},
		AuthorizationMiddleware: auth,
	})
	return &fixture{runs: runs, handler: router.Engine()}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/v1"+path, nil)
	} else {
		req = httptest.NewRequest(method, "/api/v1"+path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRunRoutes(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodPost, "/runs", `{"goal":{"x":3,"y":3}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[RunResponse](t, w)
	assert.Equal(t, 3, *created.Goal.X)
	assert.Equal(t, 0, *created.Position.Y)
	runPath := "/runs/" + created.ID

	t.Run("Report, expand and next", func(t *testing.T) {
		w := f.do(t, http.MethodPost, runPath+"/reports", `{"x":0,"y":0,"up":"open","right":"blocked"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = f.do(t, http.MethodPost, runPath+"/expand", `{"x":0,"y":0}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		expanded := decode[FrontierResponse](t, w)
		assert.Equal(t, 1, expanded.Frontier)
		assert.Equal(t, 1, expanded.Run.Expansions)

		w = f.do(t, http.MethodPost, runPath+"/next", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		moved := decode[MoveResponse](t, w)
		assert.False(t, moved.Done)
		assert.Equal(t, 0, *moved.Next.X)
		assert.Equal(t, 1, *moved.Next.Y)
	})

	t.Run("Cell", func(t *testing.T) {
		w := f.do(t, http.MethodGet, runPath+"/cells/0/1", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		c := decode[CellResponse](t, w)
		require.NotNil(t, c.Cost)
		assert.Equal(t, uint16(1), *c.Cost)
		require.NotNil(t, c.From)
		assert.Equal(t, 0, *c.From.Y)
		assert.Equal(t, "unknown", c.Up)
		assert.Equal(t, []string{"frontier_queued", "cost_available"}, c.Flags)

		w = f.do(t, http.MethodGet, runPath+"/cells/0/0", "")
		origin := decode[CellResponse](t, w)
		assert.Equal(t, "open", origin.Up)
		assert.Equal(t, "blocked", origin.Right)
		assert.Nil(t, origin.From)

		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, runPath+"/cells/x/1", "").Code)
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, runPath+"/cells/32/0", "").Code)
	})

	t.Run("Dump", func(t *testing.T) {
		w := f.do(t, http.MethodGet, runPath+"/dump", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), created.ID)
	})

	t.Run("Step", func(t *testing.T) {
		w := f.do(t, http.MethodPost, runPath+"/step", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "the new position was never reported")

		w = f.do(t, http.MethodPost, runPath+"/step", `{"x":0,"y":1,"up":"blocked","left":"blocked","right":"blocked"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		step := decode[MoveResponse](t, w)
		assert.True(t, step.Done)
		assert.Nil(t, step.Next)
		assert.Equal(t, 2, step.Run.Expansions)
	})

	t.Run("List", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/runs", "")
		require.Equal(t, http.StatusOK, w.Code)
		runs := decode[[]RunResponse](t, w)
		require.Len(t, runs, 1)
		assert.Equal(t, created.ID, runs[0].ID)
	})

	t.Run("Finish", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, runPath, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[RunResponse](t, w).Finished)

		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, runPath, "").Code)
	})
}

func TestStepWithoutBody(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(t, http.MethodPost, "/runs", `{"goal":{"x":3,"y":3}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	runPath := "/runs/" + decode[RunResponse](t, w).ID

	w = f.do(t, http.MethodPost, runPath+"/reports", `{"x":0,"y":0,"up":"open","right":"blocked"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// chunked transfer with nothing in it
	req := httptest.NewRequest(http.MethodPost, "/api/v1"+runPath+"/step", strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	step := decode[MoveResponse](t, w)
	assert.False(t, step.Done)
	require.NotNil(t, step.Next)
	assert.Equal(t, 1, *step.Next.Y)
	assert.Equal(t, 1, step.Run.Expansions)
	assert.Equal(t, 0, step.Run.Frontier)
}
func TestBadRequests(t *testing.T) {
	f := newFixture(t, nil)
	run, err := f.runs.Create(context.Background(), explorer.Point{X: 2, Y: 2})
	require.NoError(t, err)
	runPath := "/runs/" + run.ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"goal missing", http.MethodPost, "/runs", `{}`, http.StatusBadRequest},
		{"goal without y", http.MethodPost, "/runs", `{"goal":{"x":1}}`, http.StatusBadRequest},
		{"goal out of the maze", http.MethodPost, "/runs", `{"goal":{"x":40,"y":0}}`, http.StatusBadRequest},
		{"malformed run id", http.MethodGet, "/runs/nope", "", http.StatusBadRequest},
		{"unknown run", http.MethodGet, "/runs/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown wall state", http.MethodPost, runPath + "/reports", `{"x":0,"y":0,"up":"maybe"}`, http.StatusBadRequest},
		{"report without a cell", http.MethodPost, runPath + "/reports", `{"up":"open"}`, http.StatusBadRequest},
		{"negative expand", http.MethodPost, runPath + "/expand", `{"x":-1,"y":0}`, http.StatusBadRequest},
		{"step on an unknown run", http.MethodPost, "/runs/" + uuid.NewString() + "/step", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestProtectedRoutes(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	f := newFixture(t, deny)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/runs", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/runs", `{"goal":{"x":1,"y":1}}`).Code)
}

func TestStream(t *testing.T) {
	f := newFixture(t, nil)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx := context.Background()
	run, err := f.runs.Create(ctx, explorer.Point{X: 2, Y: 2})
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/" + run.ID.String() + "/stream"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	kind, first, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Contains(t, string(first), run.ID.String())

	_, err = f.runs.Report(ctx, run.ID, explorer.SensorReport{P: explorer.Point{}, Up: explorer.WallOpen})
	require.NoError(t, err)
	_, changed, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(changed))

	_, err = f.runs.Finish(ctx, run.ID)
	require.NoError(t, err)
	_, _, err = ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	t.Run("Unknown run is refused before the upgrade", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/" + uuid.NewString() + "/stream"
		_, res, err := websocket.DefaultDialer.Dial(url, nil)
		assert.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, res)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
