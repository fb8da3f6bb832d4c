package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/config"
	"github.com/san-kum/arrayviz/internal/steps"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsCommand is a client message on /ws/animate.
type wsCommand struct {
	Command string          `json:"command"`
	Op      steps.Operation `json:"op"`
	Value   int             `json:"value"`
	Values  array.Array     `json:"values,omitempty"`
	Speed   int             `json:"speed,omitempty"`
}

// wsMessage is a server message on /ws/animate.
type wsMessage struct {
	Type    string      `json:"type"`
	Session string      `json:"session,omitempty"`
	Frame   *anim.Frame `json:"frame,omitempty"`
	State   string      `json:"state,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// wsConn serialises writes; frames arrive from the runner's goroutine while
// replies come from the read loop.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) send(msg wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

func (s *Server) handleAnimate(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	id := uuid.NewString()
	log := s.log.With("session", id)
	conn := &wsConn{ws: ws}

	// Each connection animates its own copy of the shared array.
	s.mu.Lock()
	initial := s.sess.Store().Get()
	s.mu.Unlock()

	store := array.NewStore(nil)
	store.Set(initial)
	interval, _ := config.IntervalForSpeed(s.speed)
	runner := anim.NewRunner(store,
		anim.WithLogger(log),
		anim.WithInterval(interval),
		anim.WithFrameHandler(func(f anim.Frame) {
			if err := conn.send(wsMessage{Type: "frame", Frame: &f}); err != nil {
				log.Warn("failed to write frame", "error", err)
			}
		}),
	)
	defer runner.Stop()

	log.Info("websocket client connected")
	if err := conn.send(wsMessage{Type: "session", Session: id}); err != nil {
		return
	}

	for {
		var cmd wsCommand
		if err := ws.ReadJSON(&cmd); err != nil {
			log.Info("websocket client disconnected", "error", err.Error())
			return
		}
		if err := s.dispatch(runner, store, cmd); err != nil {
			log.Warn("websocket command rejected", "command", cmd.Command, "error", err)
			if conn.send(wsMessage{Type: "error", Error: err.Error()}) != nil {
				return
			}
			continue
		}
		if conn.send(wsMessage{Type: "state", State: runner.State().String()}) != nil {
			return
		}
	}
}

func (s *Server) dispatch(runner *anim.Runner, store *array.Store, cmd wsCommand) error {
	switch cmd.Command {
	case "start":
		if cmd.Values != nil {
			if err := array.Validate(cmd.Values); err != nil {
				return err
			}
			runner.Stop()
			store.Set(cmd.Values)
		}
		if cmd.Speed != 0 {
			if err := setSpeed(runner, cmd.Speed); err != nil {
				return err
			}
		}
		_, err := runner.Start(cmd.Op, cmd.Value)
		return err
	case "pause":
		runner.Pause()
	case "resume":
		runner.Resume()
	case "toggle":
		runner.Toggle()
	case "stop":
		runner.Stop()
	case "rewind":
		runner.Rewind()
	case "speed":
		return setSpeed(runner, cmd.Speed)
	default:
		return fmt.Errorf("unknown command %q", cmd.Command)
	}
	return nil
}

func setSpeed(runner *anim.Runner, speed int) error {
	d, err := config.IntervalForSpeed(speed)
	if err != nil {
		return err
	}
	return runner.SetInterval(d)
}

