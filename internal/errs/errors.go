package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrUserNotFound       = Error("user not found")
	ErrUserIsNil          = Error("user is nil")
	ErrWrongPassword      = Error("wrong password")
	ErrWrongEmail         = Error("wrong email")
	ErrWrongToken         = Error("wrong token")
	ErrInvalidToken       = Error("invalid token")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidUser        = Error("invalid user")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrFirstName          = Error("first name is empty or too short")
	ErrLastName           = Error("last name is empty or too short")
	ErrUnauthorized       = Error("unauthorized")
	ErrInvalidPageOrSize  = Error("invalid page or size")

	ErrInvalidConversationId  = Error("invalid conversation id")
	ErrConversationNotFound   = Error("conversation not found")
	ErrConversationWithSelf   = Error("cannot start a conversation with yourself")
	ErrAmbiguousContext       = Error("conversation context must reference at most one listing")
	ErrListingNotFound        = Error("listing referenced by conversation context not found")
	ErrUserNotInConversation  = Error("user is not a participant of this conversation")
	ErrEmptyMessage           = Error("message must have text or at least one image")
	ErrTooManyAttachments     = Error("message exceeds the maximum number of attachments")
	ErrUnsupportedImageType   = Error("attachment is not a supported image type")
	ErrMessageNotFound        = Error("message not found")
	NoneOfMessagesSeen        = Error("none of the messages were marked as seen")

	ErrNoFileUploaded             = Error("no file uploaded")
	ErrUnableToOpenUploadedFile   = Error("unable to open uploaded file")
	ErrUnableToUploadFile         = Error("unable to upload file")
	ErrUnableToUpdateProfilePhoto = Error("unable to update profile photo")
)
