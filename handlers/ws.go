package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/sirupsen/logrus"
)

// WSHandler pushes ledger events (new transactions, completed imports) to
// connected WebSocket clients so UIs can refresh without polling.
type WSHandler struct {
	M *melody.Melody
}

type ledgerEvent struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024
	// Keep-alive so idle feeds survive cloud proxies
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		logrus.WithField("remote", s.Request.RemoteAddr).Info("Ledger feed client connected")
	})

	m.HandleDisconnect(func(s *melody.Session) {
		logrus.WithField("remote", s.Request.RemoteAddr).Info("Ledger feed client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		logrus.WithError(err).Warn("Ledger feed error")
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request to a WebSocket subscribed to ledger events.
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		logrus.WithError(err).Error("Failed to upgrade websocket")
	}
}

// BroadcastLedgerEvent notifies every connected client that the ledger
// changed. Safe to call on a nil handler.
func (h *WSHandler) BroadcastLedgerEvent(eventType string, count int) {
	if h == nil {
		return
	}

	msg, err := json.Marshal(ledgerEvent{Type: eventType, Count: count})
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode ledger event")
		return
	}

	if err := h.M.Broadcast(msg); err != nil {
		logrus.WithError(err).Warn("Failed to broadcast ledger event")
	}
}
