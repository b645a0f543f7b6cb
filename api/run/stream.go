package runapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	Subprotocols: []string{"bearer"},
}

// stream sends the dump of the run as a text frame on connect and after every change, until
// the client leaves or the run finishes.
func (rc *RunController) stream(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	sub := rc.runs.Subscribe(id)
	defer rc.runs.Unsubscribe(id, sub)

	d, err := rc.runs.Dump(ctx.Request.Context(), id)
	if err != nil {
		rc.fail(ctx, err)
		return
	}

	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		rc.logger.Warn(fmt.Sprintf("failed to upgrade the stream of run %s: %v", id, err))
		return
	}
	defer ws.Close()

	// Reading is needed to notice the client closing.
	left := make(chan struct{})
	go func() {
		defer close(left)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, []byte(d)); err != nil {
			rc.logger.Debug(fmt.Sprintf("stream of run %s stopped: %v", id, err))
			return
		}

		select {
		case <-left:
			return
		case next, ok := <-sub:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished")
				_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				return
			}
			d = next
		}
	}
}
