package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"orthoview.app/internal/levels"
	"orthoview.app/internal/ortho"
	"orthoview.app/internal/persistence/eventlog"
	"orthoview.app/internal/progress"
	"orthoview.app/internal/protocol"
	"orthoview.app/internal/session"
	"orthoview.app/internal/tuning"
)

// Server speaks the studio protocol over one websocket per client. Each
// connection owns a private Session; the engines are pure, so there is no
// shared state between connections beyond the catalog and the progress
// store.
type Server struct {
	tune    tuning.Tuning
	catalog *levels.Catalog
	store   *progress.Store  // optional
	events  *eventlog.Writer // optional
	log     *log.Logger

	nextSession atomic.Uint64
	upgrader    websocket.Upgrader
}

func NewServer(tune tuning.Tuning, catalog *levels.Catalog, store *progress.Store, events *eventlog.Writer, logger *log.Logger) *Server {
	return &Server{
		tune:    tune,
		catalog: catalog,
		store:   store,
		events:  events,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		player, sessionID, ok := s.handshake(conn)
		if !ok {
			return
		}
		sess := session.New(s.tune, s.catalog)
		s.log.Printf("session %s open player=%s", sessionID, player)

		for {
			_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeAct {
				s.writeError(conn, "", protocol.ErrProtoBadRequest, "expected ACT")
				continue
			}
			var act protocol.ActMsg
			if err := json.Unmarshal(msg, &act); err != nil || act.ProtocolVersion != protocol.Version {
				s.writeError(conn, act.ActID, protocol.ErrProtoBadRequest, "bad act")
				continue
			}
			s.handleAct(conn, sess, player, sessionID, act)
		}
		s.log.Printf("session %s closed", sessionID)
	}
}

func (s *Server) handshake(conn *websocket.Conn) (player, sessionID string, ok bool) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", "", false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
			time.Now().Add(time.Second))
		return "", "", false
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", "", false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"),
			time.Now().Add(time.Second))
		return "", "", false
	}
	player = strings.TrimSpace(hello.PlayerName)
	if player == "" {
		player = "player"
	}
	sessionID = fmt.Sprintf("s%d", s.nextSession.Add(1))

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		Params: protocol.StudioParams{
			DefaultResolution: s.tune.DefaultResolution,
			MaxResolution:     s.tune.MaxResolution,
			UnitSize:          s.tune.UnitSize,
			Colors: protocol.FaceColors{
				Top:    s.tune.Colors.Top,
				Bottom: s.tune.Colors.Bottom,
				Front:  s.tune.Colors.Front,
				Back:   s.tune.Colors.Back,
				Right:  s.tune.Colors.Right,
				Left:   s.tune.Colors.Left,
			},
		},
		LevelsDigest: s.catalog.Digest,
	}
	if err := writeJSON(conn, welcome); err != nil {
		return "", "", false
	}
	if err := writeJSON(conn, s.levelsMsg(player)); err != nil {
		return "", "", false
	}
	return player, sessionID, true
}

func (s *Server) levelsMsg(player string) protocol.LevelsMsg {
	solved := map[string]bool{}
	if s.store != nil {
		ids, err := s.store.SolvedLevels(player)
		if err != nil {
			s.log.Printf("solved levels for %s: %v", player, err)
		}
		for _, id := range ids {
			solved[id] = true
		}
	}
	out := protocol.LevelsMsg{Type: protocol.TypeLevels, ProtocolVersion: protocol.Version}
	for _, id := range s.catalog.Order {
		lv := s.catalog.ByID[id]
		out.Levels = append(out.Levels, protocol.LevelRef{
			ID:         lv.ID,
			Name:       lv.Name,
			Difficulty: lv.Difficulty,
			Resolution: lv.Resolution,
			Solved:     solved[lv.ID],
		})
	}
	return out
}

func (s *Server) handleAct(conn *websocket.Conn, sess *session.Session, player, sessionID string, act protocol.ActMsg) {
	var err error
	progressCode := ""

	switch act.Op {
	case protocol.OpSelectLevel:
		err = sess.SelectLevel(act.LevelID)
		if err != nil {
			s.writeError(conn, act.ActID, protocol.ErrUnknownLevel, err.Error())
			return
		}
	case protocol.OpSetMode:
		err = sess.SetMode(session.Mode(act.Mode))
	case protocol.OpSetResolution:
		err = sess.SetResolution(act.R)
	case protocol.OpEditCell:
		err = sess.EditCell(act.View, act.Row, act.Col, act.Tool, act.Code)
	case protocol.OpToggleEdge:
		err = sess.ToggleEdge(act.View, act.Kind, act.Row, act.Col)
	case protocol.OpDeleteCell:
		err = sess.DeleteCell(act.X, act.Y, act.Z)
	case protocol.OpSaveProgress:
		progressCode, err = s.saveProgress(sess, player)
	case protocol.OpLoadProgress:
		var views ortho.Views
		views, err = progress.DecodeCode(act.ProgressCode)
		if err == nil {
			err = sess.ImportViews(views)
		}
		if err != nil {
			s.writeError(conn, act.ActID, protocol.ErrBadCode, err.Error())
			return
		}
	default:
		s.writeError(conn, act.ActID, protocol.ErrBadRequest, "unknown op "+act.Op)
		return
	}
	if err != nil {
		s.writeError(conn, act.ActID, protocol.ErrBadRequest, err.Error())
		return
	}

	if s.events != nil {
		_ = s.events.Write(eventlog.Entry{
			TS:      time.Now().UTC().Format(time.RFC3339Nano),
			Session: sessionID,
			Player:  player,
			Op:      act.Op,
			Detail:  act,
		})
	}

	state := stateMsg(sess.State(), act.ActID)
	state.ProgressCode = progressCode
	if err := writeJSON(conn, state); err != nil {
		return
	}
}

func (s *Server) saveProgress(sess *session.Session, player string) (string, error) {
	st := sess.State()
	code := progress.EncodeCode(st.Views)
	if s.store != nil && st.LevelID != "" {
		err := s.store.Save(progress.Entry{
			Player:    player,
			LevelID:   st.LevelID,
			Code:      code,
			Solved:    st.Solved,
			UpdatedAt: time.Now(),
		})
		if err != nil {
			return "", err
		}
	}
	return code, nil
}

func stateMsg(st session.Snapshot, ackFor string) protocol.StateMsg {
	out := protocol.StateMsg{
		Type:            protocol.TypeState,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		Mode:            string(st.Mode),
		LevelID:         st.LevelID,
		R:               st.R,
		Views:           viewTriplet(st.Views),
		Hull:            make([][4]int, 0, len(st.Hull)),
		Wireframe:       st.Wireframe,
		Solved:          st.Solved,
	}
	if st.Mode == session.ModeAnalyze {
		t := viewTriplet(st.Projections)
		out.Projections = &t
	}
	for _, c := range st.Hull {
		out.Hull = append(out.Hull, [4]int{c.X, c.Y, c.Z, c.Code()})
	}
	if !st.Surface.IsEmpty() {
		out.Surface = &protocol.SurfaceData{
			Positions: st.Surface.Positions,
			Normals:   st.Surface.Normals,
			Colors:    st.Surface.Colors,
		}
	}
	return out
}

func viewTriplet(v ortho.Views) protocol.ViewTriplet {
	conv := func(view ortho.View) protocol.ViewData {
		return protocol.ViewData{Cells: view.Cells, V: view.V, H: view.H}
	}
	return protocol.ViewTriplet{Top: conv(v.Top), Front: conv(v.Front), Side: conv(v.Side)}
}

func (s *Server) writeError(conn *websocket.Conn, ackFor, code, msg string) {
	_ = writeJSON(conn, protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		Code:            code,
		Message:         msg,
	})
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
