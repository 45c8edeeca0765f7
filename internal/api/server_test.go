package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/talgya/superblock/internal/persistence"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	store, err := persistence.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := &Server{Store: store}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func createSession(t *testing.T, ts *httptest.Server, seed int64) sessionState {
	t.Helper()
	resp, err := http.Post(fmt.Sprintf("%s/api/v1/session?seed=%d", ts.URL, seed), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func place(t *testing.T, ts *httptest.Server, id string, row, col int) *http.Response {
	t.Helper()
	body, _ := json.Marshal(placeRequest{Row: row, Col: col})
	resp, err := http.Post(ts.URL+"/api/v1/session/"+id+"/place", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestCreateSessionAndState(t *testing.T) {
	_, ts := newTestServer(t)

	st := createSession(t, ts, 42)
	require.NotEmpty(t, st.ID)
	require.EqualValues(t, 42, st.Seed)
	require.Zero(t, st.Score)
	require.Zero(t, st.Occupied)
	require.False(t, st.Terminal)
	require.NotEmpty(t, st.Next, "the upcoming category is always previewable")

	resp, err := http.Get(ts.URL + "/api/v1/session/" + st.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var again sessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&again))
	require.Equal(t, st, again)
}

func TestPlaceAndConflict(t *testing.T) {
	_, ts := newTestServer(t)
	st := createSession(t, ts, 7)

	resp := place(t, ts, st.ID, 4, 4)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ev placementEvent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ev))
	require.Equal(t, "placement", ev.Type)
	require.Equal(t, 4, ev.Row)
	require.Equal(t, 4, ev.Col)
	require.NotEmpty(t, ev.Placed)
	require.Equal(t, 1, ev.Occupied)

	// Same cell again: invalid placement, nothing applied.
	dup := place(t, ts, st.ID, 4, 4)
	defer dup.Body.Close()
	require.Equal(t, http.StatusConflict, dup.StatusCode)

	oob := place(t, ts, st.ID, 9, 0)
	defer oob.Body.Close()
	require.Equal(t, http.StatusBadRequest, oob.StatusCode)
}

func TestCandidatesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	st := createSession(t, ts, 7)

	resp := place(t, ts, st.ID, 0, 0)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/v1/session/" + st.ID + "/candidates?row=0&col=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Row        int             `json:"row"`
		Col        int             `json:"col"`
		Candidates []candidateView `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Candidates, "an occupied cell always has an evaluated candidate map")
	for _, c := range out.Candidates {
		require.NotEmpty(t, c.Target)
	}

	// An empty cell has none.
	resp, err = http.Get(ts.URL + "/api/v1/session/" + st.ID + "/candidates?row=8&col=8")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Empty(t, out.Candidates)
}

func TestResetEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	st := createSession(t, ts, 7)

	resp := place(t, ts, st.ID, 3, 3)
	resp.Body.Close()

	resp, err := http.Post(ts.URL+"/api/v1/session/"+st.ID+"/reset?seed=99", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fresh sessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fresh))
	require.EqualValues(t, 99, fresh.Seed)
	require.Zero(t, fresh.Occupied)
	require.Zero(t, fresh.Score)
	for _, row := range fresh.Board {
		for _, cell := range row {
			require.Empty(t, cell)
		}
	}
}

func TestSessionRouting(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/session/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/session/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResultsEndpoint(t *testing.T) {
	s, ts := newTestServer(t)

	require.NoError(t, s.Store.SaveResult(persistence.Result{ID: "g1", Score: 42, Placements: 81}))

	resp, err := http.Get(ts.URL + "/api/v1/results")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Results []persistence.Result `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 1)
	require.Equal(t, "g1", out.Results[0].ID)
}

func TestStreamDeliversPlacementEvents(t *testing.T) {
	_, ts := newTestServer(t)
	st := createSession(t, ts, 7)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/session/" + st.ID + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// The snapshot arrives first.
	var snapshot sessionState
	require.NoError(t, conn.ReadJSON(&snapshot))
	require.Equal(t, st.ID, snapshot.ID)

	placeResp := place(t, ts, st.ID, 2, 2)
	placeResp.Body.Close()
	require.Equal(t, http.StatusOK, placeResp.StatusCode)

	var ev placementEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "placement", ev.Type)
	require.Equal(t, 2, ev.Row)
	require.Equal(t, 2, ev.Col)
}
