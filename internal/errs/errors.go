package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUnauthorized         = Error("unauthorized")
	ErrInvalidRequestBody   = Error("invalid request body")
	ErrInvalidBoardId       = Error("invalid board id")
	ErrEmptyMessage         = Error("message is empty")
	ErrUnknownMessageType   = Error("unknown message type")
	ErrTurnAlreadyRunning   = Error("a turn is already running on this connection")
	ErrBoardNotFound        = Error("board not found")
	ErrNotBoardOwner        = Error("board is not owned by this user")
	ErrShapeNotFound        = Error("shape not found")
	ErrUnknownShapeType     = Error("unknown shape type")
	ErrMissingShapeField    = Error("missing required shape field")
	ErrUnknownTool          = Error("unknown tool")
	ErrInvalidToolArguments = Error("invalid tool arguments")
	ErrSnapshotRenderFailed = Error("snapshot render failed")
	ErrFileUploadFailed     = Error("file upload failed")
	ErrInvalidFile          = Error("invalid file")
)
