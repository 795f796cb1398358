package ws

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/guard"
	"svw.info/dotlink/internal/hint"
	"svw.info/dotlink/internal/solver"
	"svw.info/dotlink/internal/usecase"
	"svw.info/dotlink/internal/validator"
)

func dialTestSession(t *testing.T) *websocket.Conn {
	t.Helper()
	s := solver.NewBacktrackingSolver()
	uc := usecase.NewService(s, nil, validator.New(), hint.New(s), guard.New(), nil)
	play := NewPlayServer(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := httptest.NewServer(play.HandlePlay())
	t.Cleanup(srv.Close)

	con, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { con.Close() })
	return con
}

func rowLevel() *domain.Level {
	return &domain.Level{
		Rows: 1, Cols: 3,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Indigo: {{Row: 0, Col: 0}, {Row: 0, Col: 2}},
		},
	}
}

func roundTrip(t *testing.T, con *websocket.Conn, msg clientMsg) serverMsg {
	t.Helper()
	require.NoError(t, con.WriteJSON(msg))
	var reply serverMsg
	require.NoError(t, con.ReadJSON(&reply))
	return reply
}

func TestStartRejectsMalformedLevel(t *testing.T) {
	con := dialTestSession(t)

	bad := &domain.Level{
		Rows: 2, Cols: 2,
		Anchors: map[domain.ColorID][2]domain.Point{
			domain.Indigo: {{Row: 5, Col: 5}, {Row: 0, Col: 0}},
		},
	}
	reply := roundTrip(t, con, clientMsg{Op: "start", Level: bad})
	assert.Equal(t, "error", reply.Op)
	assert.NotEmpty(t, reply.Error)

	// The session survives and accepts a proper level afterwards.
	reply = roundTrip(t, con, clientMsg{Op: "start", Level: rowLevel()})
	assert.Equal(t, "state", reply.Op)
}

func TestWinningMoveAnnouncesOnce(t *testing.T) {
	con := dialTestSession(t)

	reply := roundTrip(t, con, clientMsg{Op: "start", Level: rowLevel()})
	require.Equal(t, "state", reply.Op)

	full := domain.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	reply = roundTrip(t, con, clientMsg{Op: "move", Color: domain.Indigo, Path: full})
	require.Equal(t, "state", reply.Op)

	var won serverMsg
	require.NoError(t, con.ReadJSON(&won))
	assert.Equal(t, "won", won.Op)

	// Querying the finished board must not re-announce the win: two
	// state requests in a row come back as exactly two state frames.
	reply = roundTrip(t, con, clientMsg{Op: "state"})
	assert.Equal(t, "state", reply.Op)
	reply = roundTrip(t, con, clientMsg{Op: "state"})
	assert.Equal(t, "state", reply.Op)
}
