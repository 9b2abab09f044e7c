package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reeflow/reeflow/pkg/dataset"
	"github.com/reeflow/reeflow/pkg/diagram"
	"github.com/reeflow/reeflow/pkg/flow"
)

const serverCSV = `year,domestic-ore,domestic-concentrate
2022,120,95
2023,131,104
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(serverCSV))
	if err != nil {
		t.Fatal(err)
	}
	session := diagram.NewSession(diagram.Config{Dataset: ds})
	ts := httptest.NewServer(New(session, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, into any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp := getJSON(t, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestYears(t *testing.T) {
	ts := newTestServer(t)
	var body struct {
		Years []int `json:"years"`
	}
	getJSON(t, ts.URL+"/api/years", &body)
	if len(body.Years) != 2 || body.Years[0] != 2022 || body.Years[1] != 2023 {
		t.Errorf("years = %v, want [2022 2023]", body.Years)
	}
}

func TestGetDiagram(t *testing.T) {
	ts := newTestServer(t)
	var d diagram.Diagram
	resp := getJSON(t, ts.URL+"/api/diagram/2022/", &d)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if d.Year != 2022 || len(d.Graph.Nodes) != 10 {
		t.Errorf("diagram = year %d with %d nodes", d.Year, len(d.Graph.Nodes))
	}
}

func TestGetDiagramErrors(t *testing.T) {
	ts := newTestServer(t)

	if resp := getJSON(t, ts.URL+"/api/diagram/1990/", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown year status = %d, want 404", resp.StatusCode)
	}
	if resp := getJSON(t, ts.URL+"/api/diagram/abc/", nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad year status = %d, want 400", resp.StatusCode)
	}
}

func TestPostMoveNodeEvent(t *testing.T) {
	ts := newTestServer(t)

	var before diagram.Diagram
	getJSON(t, ts.URL+"/api/diagram/2022/", &before)
	ore, _ := before.Graph.Node(flow.NodeOre)
	want := ore.Rect.Translate(20, 10)

	resp := postJSON(t, ts.URL+"/api/diagram/2022/events", Event{
		Type: EventMoveNode, Node: flow.NodeOre, DX: 20, DY: 10,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}

	var after diagram.Diagram
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatal(err)
	}
	got, _ := after.Graph.Node(flow.NodeOre)
	if got.Rect != want {
		t.Errorf("rect = %+v, want %+v", got.Rect, want)
	}
}

func TestPostEventErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		ev   Event
		want int
	}{
		{"unknown type", Event{Type: "teleport"}, http.StatusBadRequest},
		{"unknown node", Event{Type: EventMoveNode, Node: "nope"}, http.StatusNotFound},
		{"unknown link", Event{Type: EventMoveEndpoint, Link: "a-b"}, http.StatusNotFound},
		{"empty label text", Event{Type: EventAddLabel, Text: "  "}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/diagram/2022/events", tt.ev)
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRenderEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/diagram/2022/render?format=svg")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Error("body is not SVG")
	}

	bad, err := http.Get(ts.URL + "/api/diagram/2022/render?format=png")
	if err != nil {
		t.Fatal(err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", bad.StatusCode)
	}
}

func TestSaveLayoutWithoutStore(t *testing.T) {
	// A session without a store accepts saves (they stay in memory).
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/diagram/2022/layout/save", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
