package handler

import (
	"log"
	"net/http"

	"samadhan/backend/internal/localization"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type assistantMessage struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

// ServeAssistant upgrades the connection and answers each utterance from
// the scripted rule table. One peer per socket; no cross-client routing.
func (h *Handler) ServeAssistant(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}
	defer conn.Close()

	for {
		var msg assistantMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARN: Assistant socket closed unexpectedly: %v", err)
			}
			return
		}
		if msg.Locale == "" {
			msg.Locale = localization.DefaultLocale
		}
		reply := h.Assistant.Reply(msg.Text, msg.Locale)
		if err := conn.WriteJSON(gin.H{"reply": reply}); err != nil {
			log.Printf("WARN: Assistant socket write failed: %v", err)
			return
		}
	}
}

// AskAssistant is the plain HTTP fallback for clients without websockets.
func (h *Handler) AskAssistant(c *gin.Context) {
	var in assistantMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Locale == "" {
		in.Locale = localization.DefaultLocale
	}
	c.JSON(http.StatusOK, gin.H{"reply": h.Assistant.Reply(in.Text, in.Locale)})
}
