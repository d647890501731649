package http

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"quiz-trainer/internal/app"
	"quiz-trainer/internal/domain"
)

// wsFrameOverhead covers the JSON envelope and file name around an upload.
const wsFrameOverhead = 4 << 10

// WSHandler runs one trainer per websocket connection.
type WSHandler struct {
	uploader  app.Uploader
	opts      []app.ControllerOption
	readLimit int64
	upgrader  websocket.Upgrader
}

// NewWSHandler caps inbound messages so that an upload carries at most
// maxUploadBytes of file content, base64 encoded.
func NewWSHandler(uploader app.Uploader, maxUploadBytes int64, opts ...app.ControllerOption) *WSHandler {
	limit := uploadLimit(maxUploadBytes)
	return &WSHandler{
		uploader:  uploader,
		opts:      opts,
		readLimit: int64(base64.StdEncoding.EncodedLen(int(limit))) + wsFrameOverhead,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type uploadPayload struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

type selectPayload struct {
	QuestionID domain.ID `json:"questionId"`
	OptionID   domain.ID `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type stagePayload struct {
	Stage app.Stage `json:"stage"`
}

type busyPayload struct {
	Busy bool `json:"busy"`
}

type settingsPayload struct {
	PoolSize int `json:"poolSize"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wsView queues controller output for the connection's writer goroutine.
type wsView struct {
	send chan<- outboundMessage[any]
	done <-chan struct{}
}

func (v *wsView) push(typ string, payload any) {
	select {
	case v.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-v.done:
	}
}

func (v *wsView) ShowStage(stage app.Stage)         { v.push("stage", stagePayload{Stage: stage}) }
func (v *wsView) ShowBusy(busy bool)                { v.push("busy", busyPayload{Busy: busy}) }
func (v *wsView) Alert(message string)              { v.push("alert", errorPayload{Message: message}) }
func (v *wsView) ShowSettings(poolSize int)         { v.push("settings", settingsPayload{PoolSize: poolSize}) }
func (v *wsView) RenderQuestion(q app.QuestionView) { v.push("question", q) }
func (v *wsView) RenderProgress(p app.ProgressView) { v.push("progress", p) }
func (v *wsView) RenderTimer(t app.TimerView)       { v.push("timer", t) }
func (v *wsView) RenderResults(r app.ResultsView)   { v.push("results", r) }

// ServeWS upgrades the request and feeds inbound messages to a fresh controller.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.readLimit)

	send := make(chan outboundMessage[any], 32)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	view := &wsView{send: send, done: writerDone}
	c := app.NewController(view, h.uploader, h.opts...)
	c.Restart()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r, c, view, inbound)
	}

	// After Close no countdown tick can reach the view, so send can be closed.
	c.Close()
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, c *app.Controller, view *wsView, inbound inboundMessage) {
	switch inbound.Type {
	case "upload":
		var payload uploadPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			view.push("error", errorPayload{Message: "invalid upload payload"})
			return
		}
		// Failures are already alerted by the controller.
		_ = c.Upload(r.Context(), payload.Filename, payload.Content)
	case "start":
		var payload domain.SettingsInput
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				view.push("error", errorPayload{Message: "invalid start payload"})
				return
			}
		}
		c.Start(payload)
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			view.push("error", errorPayload{Message: "invalid select payload"})
			return
		}
		c.Select(payload.QuestionID, payload.OptionID)
	case "next":
		c.Next()
	case "prev":
		c.Prev()
	case "finish":
		c.Finish()
	case "mistakes":
		c.RetryMistakes()
	case "restart":
		c.Restart()
	default:
		view.push("error", errorPayload{Message: "unsupported message type"})
	}
}
