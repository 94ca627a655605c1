// Package websocket pushes domain events to connected clients. Sockets join
// one room per active family membership.
package websocket

import (
	"BabyTracker/events"
	"BabyTracker/interfaces"
	"BabyTracker/utils"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const subprotocolBearer = "bearer"

type Gateway struct {
	Hub         *Hub
	Registry    *Registry
	Backplane   Backplane
	Memberships interfaces.MembershipLookup
	Tokens      *utils.TokenManager

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewGateway(hub *Hub, registry *Registry, backplane Backplane, memberships interfaces.MembershipLookup, tokens *utils.TokenManager, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		Hub:         hub,
		Registry:    registry,
		Backplane:   backplane,
		Memberships: memberships,
		Tokens:      tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{subprotocolBearer},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Start attaches the backplane and subscribes to every domain event. A
// joining member's sockets enter the family room before the joined event is
// relayed; a removed or leaving member's sockets get that event and are then
// taken out of the room.
func (g *Gateway) Start(ctx context.Context, bus *events.Bus) error {
	if err := g.Backplane.Start(ctx, g.deliver); err != nil {
		return err
	}
	bus.On(events.FamilyMemberJoined, func(payload any) { g.moveMember(OpJoin, payload) })
	for _, name := range events.FamilyScoped {
		name := name
		bus.On(name, func(payload any) { g.relayToFamily(name, payload) })
	}
	bus.On(events.FamilyMemberRemoved, func(payload any) { g.moveMember(OpLeave, payload) })
	bus.On(events.FamilyMemberLeft, func(payload any) { g.moveMember(OpLeave, payload) })
	bus.On(events.NotificationCreated, g.relayNotification)
	return nil
}

func (g *Gateway) deliver(frame Frame) {
	switch frame.Op {
	case OpRoom:
		g.Hub.BroadcastRoom(frame.Room, frame.Data)
	case OpUser:
		for _, c := range g.localSockets(frame.UserID) {
			g.Hub.Send(c, frame.Data)
		}
	case OpJoin:
		for _, c := range g.localSockets(frame.UserID) {
			g.Hub.Join(c, frame.Room)
			g.send(c, EventJoinedFamily, map[string]any{"room": frame.Room})
		}
	case OpLeave:
		for _, c := range g.localSockets(frame.UserID) {
			g.Hub.Leave(c, frame.Room)
		}
	default:
		g.logger.Warn("unknown backplane op", "op", frame.Op)
	}
}

// localSockets resolves userID's sockets on this instance through the registry.
func (g *Gateway) localSockets(userID uint) []*Client {
	ids := g.Registry.SocketsOf(userID)
	out := make([]*Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := g.Hub.Client(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func (g *Gateway) moveMember(op string, payload any) {
	p, ok := payload.(events.MemberPayload)
	if !ok || p.Membership == nil || p.FamilyID == 0 {
		g.logger.Warn("unexpected membership payload", "op", op)
		return
	}
	g.publishFrame(Frame{Op: op, Room: FamilyRoom(p.FamilyID), UserID: p.Membership.UserID})
}

func (g *Gateway) relayToFamily(name string, payload any) {
	scoped, ok := payload.(events.FamilyScope)
	if !ok || scoped.TargetFamily() == 0 {
		g.logger.Warn("event has no family, not relayed", "event", name)
		return
	}
	data, err := encode(name, payload)
	if err != nil {
		g.logger.Error("encode frame failed", "event", name, "error", err)
		return
	}
	g.publishFrame(Frame{Op: OpRoom, Room: FamilyRoom(scoped.TargetFamily()), Data: data})
}

func (g *Gateway) relayNotification(payload any) {
	p, ok := payload.(events.NotificationPayload)
	if !ok || p.Notification == nil {
		g.logger.Warn("unexpected notification payload", "event", events.NotificationCreated)
		return
	}
	data, err := encode(events.NotificationCreated, p.Notification)
	if err != nil {
		g.logger.Error("encode frame failed", "event", events.NotificationCreated, "error", err)
		return
	}
	g.publishFrame(Frame{Op: OpUser, UserID: p.Notification.UserID, Data: data})
}

func (g *Gateway) publishFrame(frame Frame) {
	if err := g.Backplane.Publish(context.Background(), frame); err != nil {
		g.logger.Error("backplane publish failed", "op", frame.Op, "room", frame.Room, "user_id", frame.UserID, "error", err)
	}
}

// ServeHTTP upgrades the request, authenticates the bearer token and runs the
// socket until it disconnects.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Info("websocket upgrade failed", "error", err)
		return
	}

	userID, err := g.authenticate(r)
	if err != nil {
		g.closeWithError(conn, CodeUnauthorized, err.Error(), CloseUnauthorized)
		return
	}

	client := newClient(uuid.NewString(), userID, g.Hub, conn, g.logger)
	g.Hub.Register(client)
	g.Registry.Add(userID, client.ID)
	defer g.disconnect(client)

	if err := g.onConnect(r.Context(), client); err != nil {
		g.logger.Error("websocket connect setup failed", "user_id", userID, "error", err)
		g.closeWithError(conn, CodeInternal, "could not load family memberships", websocket.CloseInternalServerErr)
		return
	}

	go client.WritePump()
	client.ReadPump(g.handleInbound)
}

func (g *Gateway) authenticate(r *http.Request) (uint, error) {
	raw := bearerToken(r)
	if raw == "" {
		return 0, utils.ErrInvalidToken
	}
	claims, err := g.Tokens.Parse(raw)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

// closeWithError writes an error event and a close frame on a socket whose
// write pump has not started, then closes it.
func (g *Gateway) closeWithError(conn *websocket.Conn, code, reason string, closeCode int) {
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if frame, err := encode(EventError, ErrorData{Code: code, Message: reason}); err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, frame)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, strings.ToLower(code)))
}

// onConnect joins the user's family rooms and announces the connection.
func (g *Gateway) onConnect(ctx context.Context, c *Client) error {
	memberships, err := g.Memberships.ActiveMemberships(ctx, c.UserID)
	if err != nil {
		return err
	}

	familyIDs := make([]uint, 0, len(memberships))
	var primary *uint
	for i := range memberships {
		m := &memberships[i]
		g.Hub.Join(c, FamilyRoom(m.FamilyID))
		familyIDs = append(familyIDs, m.FamilyID)
		if m.IsPrimary && primary == nil {
			primary = &m.FamilyID
		}
	}
	if primary == nil && len(familyIDs) > 0 {
		primary = &familyIDs[0]
	}

	g.send(c, EventConnected, map[string]any{
		"socketId":  c.ID,
		"userId":    c.UserID,
		"familyIds": familyIDs,
	})
	g.send(c, EventPrimaryFamily, map[string]any{"familyId": primary})
	return nil
}

func (g *Gateway) disconnect(c *Client) {
	g.Registry.Remove(c.ID)
	g.Hub.Unregister(c)
}

func (g *Gateway) handleInbound(c *Client, msg Inbound) {
	switch msg.Event {
	case EventJoinFamily:
		g.joinFamily(c, msg.Data)
	case EventPing:
		g.send(c, EventPong, map[string]any{"timestamp": time.Now().UTC()})
	default:
		g.sendError(c, CodeUnknownEvent, "unknown event "+msg.Event)
	}
}

func (g *Gateway) joinFamily(c *Client, raw json.RawMessage) {
	var req struct {
		FamilyID uint `json:"familyId"`
	}
	if err := json.Unmarshal(raw, &req); err != nil || req.FamilyID == 0 {
		g.sendError(c, CodeBadRequest, "familyId is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := g.Memberships.FindActiveMembership(ctx, c.UserID, req.FamilyID)
	if err != nil {
		g.logger.Error("membership lookup failed", "user_id", c.UserID, "family_id", req.FamilyID, "error", err)
		g.sendError(c, CodeForbidden, "could not verify membership")
		return
	}
	if m == nil {
		g.sendError(c, CodeForbidden, "not a member of this family")
		return
	}

	room := FamilyRoom(req.FamilyID)
	g.Hub.Join(c, room)
	g.send(c, EventJoinedFamily, map[string]any{"familyId": req.FamilyID, "room": room})
}

func (g *Gateway) send(c *Client, event string, data any) {
	frame, err := encode(event, data)
	if err != nil {
		g.logger.Error("encode frame failed", "event", event, "error", err)
		return
	}
	g.Hub.Send(c, frame)
}

func (g *Gateway) sendError(c *Client, code, message string) {
	g.send(c, EventError, ErrorData{Code: code, Message: message})
}

func (g *Gateway) Stats() Stats {
	users, _ := g.Registry.Counts()
	sockets, rooms := g.Hub.Counts()
	return Stats{Users: users, Sockets: sockets, Rooms: rooms}
}

// RunStats broadcasts connection-stats to every local socket until ctx ends.
func (g *Gateway) RunStats(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame, err := encode(EventConnectionStats, g.Stats())
			if err != nil {
				continue
			}
			g.Hub.BroadcastAll(frame)
		}
	}
}

// bearerToken looks in the Authorization header, the token query parameter
// and finally the "bearer, <token>" subprotocol pair.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if parts := strings.SplitN(h, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	protocols := websocket.Subprotocols(r)
	for i, p := range protocols {
		if p == subprotocolBearer && i+1 < len(protocols) {
			return protocols[i+1]
		}
	}
	return ""
}
