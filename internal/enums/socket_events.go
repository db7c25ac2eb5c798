package enums

// Inbound frame types.
const (
	SOCKET_EVENT_PING         = "ping"
	SOCKET_EVENT_CHAT_MESSAGE = "chat_message"
)

// Outbound frame types.
const (
	SOCKET_EVENT_PONG               = "pong"
	SOCKET_EVENT_CHAT_STARTING      = "chat_starting"
	SOCKET_EVENT_CHAT_RESPONSE      = "chat_response"
	SOCKET_EVENT_CHAT_COMPLETED     = "chat_completed"
	SOCKET_EVENT_ERROR              = "error"
	SOCKET_EVENT_SHAPE_START        = "shape_start"
	SOCKET_EVENT_SHAPE_CREATED      = "shape_created"
	SOCKET_EVENT_SHAPE_UPDATE_START = "shape_update_start"
	SOCKET_EVENT_SHAPE_UPDATED      = "shape_updated"
	SOCKET_EVENT_SHAPE_DELETED      = "shape_deleted"
	SOCKET_EVENT_BOARD_RENAMED      = "board_renamed"
	SOCKET_EVENT_TOKEN_WARNING      = "token_warning"
	SOCKET_EVENT_TOKEN_BLOCKED      = "token_blocked"
)
