package msgs

const (
	MsgOperationFailed         = "Operation failed"
	MsgOperationSuccessful     = "Operation successful"
	MsgYouMustLoginFirst       = "You must login first"
	MsgAssistantUnavailable    = "The assistant is unavailable right now, please try again"
	MsgReplyGeneratedNotSaved  = "The reply was generated but could not be saved to the board history"
	MsgInvalidChatMessage      = "Invalid chat message"
	MsgFileUploadedSuccessfuly = "File uploaded successfully"
)
