package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"adrenaline/auth"
	"adrenaline/domain"
	"adrenaline/shared/configs"
	"adrenaline/shared/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserGetter resolves the authenticated user id from the session cookie.
type UserGetter interface {
	GetUserById(ctx context.Context, id string) (domain.User, error)
}

// LeaderboardSource serves the ranking endpoint.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
}

type Handler struct {
	hub   *Hub
	users UserGetter
	board LeaderboardSource
}

func NewHandler(hub *Hub, users UserGetter, board LeaderboardSource) *Handler {
	return &Handler{hub: hub, users: users, board: board}
}

func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/play", h.createMatchHandler)
	engine.GET("/play/:matchid", h.joinMatchHandler)
	engine.GET("/leaderboard", h.leaderboardHandler)
}

// createMatchHandler opens a fresh lobby and seats the caller as host.
func (h *Handler) createMatchHandler(ctx *gin.Context) {
	player, ok := h.handshake(ctx)
	if !ok {
		return
	}

	match := h.hub.CreateMatch()
	h.seat(player, match)
}

func (h *Handler) joinMatchHandler(ctx *gin.Context) {
	matchid := ctx.Param("matchid")

	player, ok := h.handshake(ctx)
	if !ok {
		return
	}

	match, found := h.hub.FindMatch(matchid)
	if !found {
		player.socket.Close("match-not-found")
		return
	}
	h.seat(player, match)
}

// handshake authenticates the session cookie and upgrades the connection.
func (h *Handler) handshake(ctx *gin.Context) (*Player, bool) {
	cookie, err := ctx.Cookie(configs.JWTCookie.Name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "player-not-logged-in"})
		return nil, false
	}

	jwtData, err := auth.VerifyJWT(cookie)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad-token"})
		return nil, false
	}

	user, err := h.users.GetUserById(ctx.Request.Context(), jwtData.Id)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unknown-user"})
		return nil, false
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "websocket-upgrade-failed"})
		return nil, false
	}

	logger.Infof("player %s connected", user.Username)
	return newPlayer(user.Id, user.Username, NewWebsocketConnection(conn)), true
}

func (h *Handler) seat(player *Player, match *Match) {
	player.match = match

	req := joinRequest{player: player, errChan: make(chan error, 1)}
	match.joinRequests <- req
	if err := <-req.errChan; err != nil {
		player.socket.Close(err.Error())
		return
	}

	go player.ReadPump()
	go player.WritePump()

	// a lobby link so the host can invite the others
	player.Send(encodeFrame("match_id", match.id))
}

func (h *Handler) leaderboardHandler(ctx *gin.Context) {
	rows, err := h.board.Leaderboard(ctx.Request.Context(), 50)
	if err != nil {
		if errors.Is(err, domain.UnexpectedDatabaseError) {
			logger.Criticalf("leaderboard: %v", err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "server-error"})
		return
	}

	board := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		board = append(board, gin.H{
			"username": row.Username,
			"wins":     row.Wins,
			"matches":  row.Matches,
			"points":   row.TotalPoints,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"leaderboard": board})
}
