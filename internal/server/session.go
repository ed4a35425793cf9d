package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tsawler/sentiment"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

// Message types exchanged on a websocket session.
const (
	msgClassify = "classify"
	msgHistory  = "history"
	msgClear    = "clear"
	msgResult   = "result"
	msgError    = "error"
)

type wsRequest struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type wsResponse struct {
	Type    string                    `json:"type"`
	Session string                    `json:"session"`
	ID      string                    `json:"id,omitempty"`
	Result  *sentiment.Result         `json:"result,omitempty"`
	History []sentiment.Result        `json:"history,omitempty"`
	Summary *sentiment.HistorySummary `json:"summary,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// session is one websocket client. Its History is touched only by the read
// loop in serve.
type session struct {
	id      uuid.UUID
	conn    *websocket.Conn
	history *sentiment.History
	writeMu sync.Mutex
}

func (s *Server) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		id:      uuid.New(),
		conn:    conn,
		history: sentiment.NewHistory(),
	}

	logger := s.logger.With("session", sess.id.String())
	logger.Info("websocket session opened", "remote", req.RemoteAddr)
	defer func() {
		_ = conn.Close()
		logger.Info("websocket session closed", "results", sess.history.Len())
	}()

	conn.SetReadLimit(s.cfg.ReadBodyMaxBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go sess.keepalive(stopPing)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var out wsResponse
		var in wsRequest
		if err := json.Unmarshal(payload, &in); err != nil {
			out = wsResponse{Type: msgError, Session: sess.id.String(), Error: "invalid json: " + err.Error()}
		} else {
			out = s.dispatch(req, sess, in)
		}
		if err := sess.write(out); err != nil {
			logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) dispatch(req *http.Request, sess *session, in wsRequest) wsResponse {
	out := wsResponse{Session: sess.id.String()}

	switch in.Type {
	case msgClassify:
		if strings.TrimSpace(in.Text) == "" {
			out.Type = msgError
			out.Error = errTextRequired.Error()
			return out
		}
		if err := s.pace(req.Context()); err != nil {
			out.Type = msgError
			out.Error = err.Error()
			return out
		}
		result := s.analyzer.Classify(in.Text)
		sess.history.Add(result)

		out.Type = msgResult
		out.ID = uuid.NewString()
		out.Result = &result
	case msgHistory:
		out.Type = msgHistory
	case msgClear:
		sess.history.Clear()
		out.Type = msgHistory
	default:
		out.Type = msgError
		out.Error = "unknown message type: " + in.Type
		return out
	}

	summary := sess.history.Summary()
	out.History = sess.history.Results()
	out.Summary = &summary
	return out
}

func (sess *session) write(v wsResponse) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sess.conn.WriteJSON(v)
}

func (sess *session) keepalive(stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sess.writeMu.Lock()
			err := sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			sess.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
