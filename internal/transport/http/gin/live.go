package httpgin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kirinyoku/eventdocs/internal/service"
)

const (
	liveReadLimit = 4 << 10
	liveIdle      = 60 * time.Second
	liveWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is handled at HTTP level and the calculator is public.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveFrame struct {
	Type   string             `json:"type"`
	Result *CalculateResponse `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// @Summary  Live revenue calculator
// @Description  Websocket. Every text frame holding a CalculateRequest is
// @Description  answered with {type: "result", result: CalculateResponse},
// @Description  malformed frames with {type: "error", error: string}.
// @Router   /pricing/live [get]
func handleLiveCalculator(svcs *service.Services, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		conn.SetReadLimit(liveReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(liveIdle))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(liveIdle))
		})

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("live calculator closed", "error", err)
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(liveIdle))

			var frame liveFrame
			var req CalculateRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				frame = liveFrame{Type: "error", Error: "invalid payload"}
			} else {
				res := calculate(svcs, req.Input())
				frame = liveFrame{Type: "result", Result: &res}
			}

			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(frame); err != nil {
				logger.Debug("live calculator write failed", "error", err)
				return
			}
		}
	}
}
