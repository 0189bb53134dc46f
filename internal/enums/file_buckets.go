package enums

const (
	FILE_BUCKET_USER_PROFILE        = "user-profile-photos"
	FILE_BUCKET_MESSAGE_ATTACHMENTS = "message-attachments"
)
