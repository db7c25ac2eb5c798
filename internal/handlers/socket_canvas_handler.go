package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"canvasChat/internal/enums"
	"canvasChat/internal/errs"
	"canvasChat/internal/hub"
	"canvasChat/internal/models"
	"canvasChat/internal/models/socket"
	"canvasChat/internal/msgs"
	"canvasChat/internal/services"
	"canvasChat/internal/utils"
	"canvasChat/internal/validators"
)

type SocketCanvasHandler struct {
	upgrader    websocket.Upgrader
	hub         *hub.Hub
	chatService *services.ChatService
	jwtKey      []byte
	mailboxSize int
}

func NewSocketCanvasHandler(h *hub.Hub, chatService *services.ChatService, jwtKey []byte, mailboxSize int) *SocketCanvasHandler {
	return &SocketCanvasHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:         h,
		chatService: chatService,
		jwtKey:      jwtKey,
		mailboxSize: mailboxSize,
	}
}

func (sch *SocketCanvasHandler) HandleSocketCanvasRoute(ctx *gin.Context) {
	// Authenticate user
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	if jwtToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	userInfo, err := utils.VerifyToken(jwtToken, sch.jwtKey)
	if err != nil || userInfo.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	boardID, err := utils.ParseUintParam(ctx.Query("boardId"))
	if err != nil || boardID == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidBoardId},
		})
		return
	}

	sch.handleConnection(ctx, userInfo, boardID)
}

func (sch *SocketCanvasHandler) handleConnection(ctx *gin.Context, userInfo *models.Claims, boardID uint) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := hub.NewClient(sch.hub, ws, userInfo.ID, boardID, sch.mailboxSize)
	sch.hub.Register(client)

	go client.WritePump()
	// ReadPump unregisters the client and closes the socket on exit.
	client.ReadPump(sch.handleEvent)
}

func (sch *SocketCanvasHandler) handleEvent(client *hub.Client, event *socket.Event) {
	switch event.Type {
	case enums.SOCKET_EVENT_PING:
		client.SendEvent(enums.SOCKET_EVENT_PONG, nil)
	case enums.SOCKET_EVENT_CHAT_MESSAGE:
		sch.handleChatMessage(client, event.Data)
	default:
		log.Printf("Unknown message type %q from user %v", event.Type, client.UserID)
		client.SendEvent(enums.SOCKET_EVENT_ERROR, socket.ErrorPayload{Message: errs.ErrUnknownMessageType.Error()})
	}
}

func (sch *SocketCanvasHandler) handleChatMessage(client *hub.Client, data json.RawMessage) {
	var payload socket.ChatMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.SendEvent(enums.SOCKET_EVENT_ERROR, socket.ErrorPayload{Message: msgs.MsgInvalidChatMessage})
		return
	}
	if validationErrs := validators.ValidateChatMessage(&payload); len(validationErrs) > 0 {
		client.SendEvent(enums.SOCKET_EVENT_ERROR, socket.ErrorPayload{Message: validationErrs[0].Error()})
		return
	}
	if !client.BeginTurn() {
		client.SendEvent(enums.SOCKET_EVENT_ERROR, socket.ErrorPayload{Message: errs.ErrTurnAlreadyRunning.Error()})
		return
	}

	// The turn runs on its own goroutine so a slow provider never blocks
	// this connection's read loop. Disconnect mid-turn only stops delivery;
	// the turn still runs to completion and persists.
	go func() {
		defer client.EndTurn()
		sch.chatService.RunTurn(context.Background(), client, client.UserID, &payload)
	}()
}
