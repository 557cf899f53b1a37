package ws

import (
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"orthoview.app/internal/levels"
	"orthoview.app/internal/protocol"
	"orthoview.app/internal/tuning"
)

func testCatalog() *levels.Catalog {
	return &levels.Catalog{
		ByID: map[string]levels.Level{
			"lv_cube": {ID: "lv_cube", Name: "one cube", Resolution: 2, Cells: [][3]int{{0, 0, 0}}},
		},
		Order:  []string{"lv_cube"},
		Digest: "test",
	}
}

func dialTest(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()
	logger := log.New(os.Stderr, "[test] ", 0)
	srv := NewServer(tuning.Defaults(), testCatalog(), nil, nil, logger)
	hs := httptest.NewServer(srv.Handler())

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		hs.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		hs.Close()
	}
}

func readMsg(t *testing.T, conn *websocket.Conn, into any) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		t.Fatalf("decode base: %v", err)
	}
	if into != nil {
		if err := json.Unmarshal(msg, into); err != nil {
			t.Fatalf("unmarshal %s: %v", base.Type, err)
		}
	}
	return base.Type
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	b, _ := json.Marshal(v)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestServer_HandshakeAndEditFlow(t *testing.T) {
	conn, done := dialTest(t)
	defer done()

	sendJSON(t, conn, protocol.HelloMsg{
		Type: protocol.TypeHello, ProtocolVersion: protocol.Version, PlayerName: "ada",
	})

	var welcome protocol.WelcomeMsg
	if typ := readMsg(t, conn, &welcome); typ != protocol.TypeWelcome {
		t.Fatalf("got %s want WELCOME", typ)
	}
	if welcome.SessionID == "" || welcome.Params.MaxResolution <= 0 {
		t.Fatalf("welcome incomplete: %+v", welcome)
	}

	var lvls protocol.LevelsMsg
	if typ := readMsg(t, conn, &lvls); typ != protocol.TypeLevels {
		t.Fatalf("got %s want LEVELS", typ)
	}
	if len(lvls.Levels) != 1 || lvls.Levels[0].ID != "lv_cube" {
		t.Fatalf("levels: %+v", lvls.Levels)
	}

	// Shrink to 1³ and fill all three views: the hull is one cube.
	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		ActID: "a1", Op: protocol.OpSetResolution, R: 1,
	})
	var state protocol.StateMsg
	if typ := readMsg(t, conn, &state); typ != protocol.TypeState {
		t.Fatalf("got %s want STATE", typ)
	}
	if state.R != 1 || state.AckFor != "a1" {
		t.Fatalf("state after resize: %+v", state)
	}

	for i, view := range []string{"front", "top", "side"} {
		sendJSON(t, conn, protocol.ActMsg{
			Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
			Op: protocol.OpEditCell, View: view, Row: 0, Col: 0, Tool: "block",
		})
		if typ := readMsg(t, conn, &state); typ != protocol.TypeState {
			t.Fatalf("edit %d: got %s want STATE", i, typ)
		}
	}
	if len(state.Hull) != 1 || state.Hull[0] != [4]int{0, 0, 0, 1} {
		t.Fatalf("hull: %v", state.Hull)
	}
	if state.Surface == nil || len(state.Surface.Positions) != 12*9 {
		t.Fatalf("surface missing or wrong size")
	}
	if len(state.Wireframe) == 0 {
		t.Fatalf("wireframe missing")
	}
}

func TestServer_SelectLevelAndErrors(t *testing.T) {
	conn, done := dialTest(t)
	defer done()

	sendJSON(t, conn, protocol.HelloMsg{
		Type: protocol.TypeHello, ProtocolVersion: protocol.Version, PlayerName: "ada",
	})
	readMsg(t, conn, nil) // WELCOME
	readMsg(t, conn, nil) // LEVELS

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Op: protocol.OpSelectLevel, LevelID: "lv_missing",
	})
	var errMsg protocol.ErrorMsg
	if typ := readMsg(t, conn, &errMsg); typ != protocol.TypeError {
		t.Fatalf("got %s want ERROR", typ)
	}
	if errMsg.Code != protocol.ErrUnknownLevel {
		t.Fatalf("code: got %s want %s", errMsg.Code, protocol.ErrUnknownLevel)
	}

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Op: protocol.OpSelectLevel, LevelID: "lv_cube",
	})
	var state protocol.StateMsg
	if typ := readMsg(t, conn, &state); typ != protocol.TypeState {
		t.Fatalf("got %s want STATE", typ)
	}
	if state.Mode != "analyze" || state.Projections == nil {
		t.Fatalf("analyze state incomplete: mode=%s", state.Mode)
	}
	// Ground truth (0,0,0) at R=2 projects to front index 2.
	if state.Projections.Front.Cells[2] != 1 {
		t.Fatalf("projection: %v", state.Projections.Front.Cells)
	}

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version, Op: "teleport",
	})
	if typ := readMsg(t, conn, &errMsg); typ != protocol.TypeError {
		t.Fatalf("unknown op: got %s want ERROR", typ)
	}
}

func TestServer_ProgressCodeRoundTrip(t *testing.T) {
	conn, done := dialTest(t)
	defer done()

	sendJSON(t, conn, protocol.HelloMsg{
		Type: protocol.TypeHello, ProtocolVersion: protocol.Version, PlayerName: "ada",
	})
	readMsg(t, conn, nil)
	readMsg(t, conn, nil)

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Op: protocol.OpEditCell, View: "front", Row: 0, Col: 0, Tool: "block",
	})
	var state protocol.StateMsg
	readMsg(t, conn, &state)

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version, Op: protocol.OpSaveProgress,
	})
	readMsg(t, conn, &state)
	if state.ProgressCode == "" {
		t.Fatalf("no progress code returned")
	}
	code := state.ProgressCode

	// A fresh edit wipes the cell, then the code restores it.
	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Op: protocol.OpEditCell, View: "front", Row: 0, Col: 0, Tool: "block",
	})
	readMsg(t, conn, &state)
	if state.Views.Front.Cells[0] != 0 {
		t.Fatalf("cell should be cleared")
	}

	sendJSON(t, conn, protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Op: protocol.OpLoadProgress, ProgressCode: code,
	})
	readMsg(t, conn, &state)
	if state.Views.Front.Cells[0] != 1 {
		t.Fatalf("progress code did not restore the view")
	}
}
