// Package ws serves interactive play sessions over a websocket. Each
// session owns a private board for one level; path commits arrive as
// whole paths (the client handles the drag), and the server answers
// with validation results, the post-commit solvability guard, hints,
// and the win condition.
package ws

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/usecase"
)

type PlayServer struct {
	UC       *usecase.Service
	Log      *slog.Logger
	Upgrader websocket.Upgrader
}

func NewPlayServer(uc *usecase.Service, log *slog.Logger) *PlayServer {
	return &PlayServer{UC: uc, Log: log}
}

// clientMsg is anything the player sends.
type clientMsg struct {
	Op    string         `json:"op"` // start | move | clear | hint | state
	Level *domain.Level  `json:"level,omitempty"`
	Color domain.ColorID `json:"color,omitempty"`
	Path  domain.Path    `json:"path,omitempty"`
}

// serverMsg is anything the server sends back.
type serverMsg struct {
	Op        string             `json:"op"` // state | rejected | hint | won | error
	Cells     [][]domain.ColorID `json:"cells,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	Conflicts []domain.Point     `json:"conflicts,omitempty"`
	Found     bool               `json:"found,omitempty"`
	Hint      *domain.Hint       `json:"hint,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// session is the per-connection game state. The read loop is the only
// goroutine touching it, so no locking is needed.
type session struct {
	level *domain.Level
	board *domain.Board
}

// HandlePlay upgrades the connection and runs the session loop until
// the client goes away.
func (s *PlayServer) HandlePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.Log.Warn("websocket upgrade failed", "err", err)
			return
		}
		defer con.Close()
		s.Log.Info("play session opened", "remote", con.RemoteAddr())

		sess := &session{}
		for {
			var msg clientMsg
			if err := con.ReadJSON(&msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					s.Log.Info("play session closed", "remote", con.RemoteAddr(), "err", err)
				}
				return
			}
			reply := s.dispatch(r, sess, msg)
			if err := con.WriteJSON(reply); err != nil {
				s.Log.Warn("play session write failed", "err", err)
				return
			}
			// Only a winning commit gets the follow-up announcement;
			// start/clear/state echoes of a finished board stay quiet.
			if msg.Op == "move" && reply.Op == "state" && s.won(r, sess) {
				if err := con.WriteJSON(serverMsg{Op: "won"}); err != nil {
					return
				}
			}
		}
	}
}

func (s *PlayServer) dispatch(r *http.Request, sess *session, msg clientMsg) serverMsg {
	switch msg.Op {
	case "start":
		if msg.Level == nil {
			return serverMsg{Op: "error", Error: "start needs a level"}
		}
		if err := msg.Level.Validate(); err != nil {
			return serverMsg{Op: "error", Error: err.Error()}
		}
		sess.level = msg.Level
		sess.board = domain.NewBoard(msg.Level)
		return s.state(sess)
	case "move":
		return s.move(r, sess, msg)
	case "clear":
		if sess.board == nil {
			return serverMsg{Op: "error", Error: "no session started"}
		}
		sess.board.RemoveColorPath(msg.Color)
		return s.state(sess)
	case "hint":
		return s.hint(r, sess)
	case "state":
		if sess.board == nil {
			return serverMsg{Op: "error", Error: "no session started"}
		}
		return s.state(sess)
	default:
		return serverMsg{Op: "error", Error: "unknown op " + msg.Op}
	}
}

// move validates and commits a path, then runs the solvability guard.
// A commit that walls off another color is rolled back, matching the
// desktop behavior of rejecting the path with a warning.
func (s *PlayServer) move(r *http.Request, sess *session, msg clientMsg) serverMsg {
	if sess.board == nil {
		return serverMsg{Op: "error", Error: "no session started"}
	}
	ok, conflicts, err := s.UC.ValidatePath(r.Context(), sess.level, sess.board, msg.Color, msg.Path)
	if err != nil {
		return serverMsg{Op: "error", Error: err.Error()}
	}
	if !ok {
		return serverMsg{Op: "rejected", Reason: "invalid path", Conflicts: conflicts}
	}

	before := sess.board.Clone()
	sess.board.ApplyPath(msg.Color, msg.Path)

	solvable, err := s.UC.StillSolvable(r.Context(), sess.level, sess.board, msg.Color)
	if err != nil {
		sess.board = before
		return serverMsg{Op: "error", Error: err.Error()}
	}
	if !solvable {
		sess.board = before
		return serverMsg{Op: "rejected", Reason: "path blocks another connection"}
	}
	return s.state(sess)
}

func (s *PlayServer) hint(r *http.Request, sess *session) serverMsg {
	if sess.board == nil {
		return serverMsg{Op: "error", Error: "no session started"}
	}
	h, found, err := s.UC.Hint(r.Context(), sess.level, sess.board)
	if err != nil {
		return serverMsg{Op: "error", Error: err.Error()}
	}
	if !found {
		return serverMsg{Op: "hint", Found: false}
	}
	return serverMsg{Op: "hint", Found: true, Hint: &h}
}

func (s *PlayServer) state(sess *session) serverMsg {
	return serverMsg{Op: "state", Cells: sess.board.Cells}
}

func (s *PlayServer) won(r *http.Request, sess *session) bool {
	if sess.board == nil {
		return false
	}
	won, err := s.UC.Win(r.Context(), sess.level, sess.board)
	return err == nil && won
}
