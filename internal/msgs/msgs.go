package msgs

const (
	MsgOperationFailed         = "operation failed"
	MsgOperationSuccessful     = "operation successful"
	MsgUserCreatedSuccessfully = "user created successfully"
	MsgYouMustLoginFirst       = "you must login first"
	MsgNoMessagesYet           = "no messages yet"
)
