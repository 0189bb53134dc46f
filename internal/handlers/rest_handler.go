package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"weddingChat/internal/errs"
	"weddingChat/internal/models"
	"weddingChat/internal/msgs"
	"weddingChat/internal/services"
	"weddingChat/internal/utils"
	"weddingChat/internal/validators"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService        *services.AuthenticationService
	chatService        *services.ChatService
	listingService     *services.ListingService
	fileManagerService *services.FileManagerService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	listingService *services.ListingService,
	fileManagerService *services.FileManagerService,
) *RestHandler {
	return &RestHandler{
		authService:        authService,
		chatService:        chatService,
		listingService:     listingService,
		fileManagerService: fileManagerService,
	}
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var errors []error

	var loginData models.LoginRequestBody
	err := ctx.BindJSON(&loginData)
	if err != nil {
		log.Println("Error login data json binding:", err)
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) Register(ctx *gin.Context) {
	var errors []error

	var user models.User
	err := ctx.BindJSON(&user)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	_, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errors = append(errors, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
	})
}

func (rh *RestHandler) GetSingleUser(ctx *gin.Context) {
	id := ctx.Param("id")

	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	user, errs := rh.authService.GetSingleUser(uint(idInt))
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user,
	})
}

func (rh *RestHandler) GetAllUsersWithPagination(ctx *gin.Context) {
	pageInt, sizeInt := paginationFromQuery(ctx)

	response, errs := rh.authService.GetAllUsersWithPagination(pageInt, sizeInt)
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

// GetOrCreateConversation resolves the canonical conversation between the
// authenticated user and the requested counterpart, creating it if this is
// the first message intent for the pair and context.
func (rh *RestHandler) GetOrCreateConversation(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	var body models.CreateConversationRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	conversation, convErrs := rh.chatService.GetOrCreateConversation(userID, body.OtherUserID, body.ToConversationContext())
	if len(convErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  convErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    conversation,
	})
}

func (rh *RestHandler) GetUserConversationsByToken(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	pageInt, sizeInt := paginationFromQuery(ctx)

	conversationsResponse, errs := rh.chatService.GetUserConversations(userID, pageInt, sizeInt)
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    conversationsResponse,
	})
}

// GetConversationMessages returns the history oldest first. Fetching as a
// participant marks the other participant's unread messages seen; the
// caller's own messages are never flipped.
func (rh *RestHandler) GetConversationMessages(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidConversationId},
		})
		return
	}

	pageInt, sizeInt := paginationFromQuery(ctx)

	messagesResponse, msgErrs := rh.chatService.GetConversationMessages(uint(idInt), userID, pageInt, sizeInt)
	if len(msgErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  msgErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    messagesResponse,
	})
}

// SaveMessage persists a message and returns the stored row, including the
// server-assigned id and timestamp. Clients append the returned row to
// local state only after this call succeeds.
func (rh *RestHandler) SaveMessage(ctx *gin.Context) {
	senderID := utils.GetUserIdFromContext(ctx)
	if senderID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	var messageRequest models.MessageRequest
	if err := ctx.ShouldBindJSON(&messageRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequest},
		})
		return
	}

	message := &models.Message{
		ConversationID: messageRequest.ConversationID,
		Content:        messageRequest.Content,
		Images:         messageRequest.Images,
		SenderID:       senderID,
	}

	msg, saveErrs := rh.chatService.SendMessage(message)
	if len(saveErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  saveErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    msg,
	})
}

// UploadMessageAttachments uploads up to the attachment limit in one batch.
// Each file succeeds or fails on its own; a failed file never blocks its
// siblings, and the caller decides whether to send with fewer images.
func (rh *RestHandler) UploadMessageAttachments(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrNoFileUploaded},
		})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrNoFileUploaded},
		})
		return
	}
	if len(files) > validators.MaxMessageAttachments {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrTooManyAttachments},
		})
		return
	}

	results := make([]models.AttachmentUploadResult, 0, len(files))
	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !validators.IsSupportedImageType(contentType) {
			results = append(results, models.AttachmentUploadResult{
				FileName: file.Filename,
				Error:    errs.ErrUnsupportedImageType.Error(),
			})
			continue
		}

		src, err := file.Open()
		if err != nil {
			results = append(results, models.AttachmentUploadResult{
				FileName: file.Filename,
				Error:    errs.ErrUnableToOpenUploadedFile.Error(),
			})
			continue
		}

		url, err := rh.fileManagerService.UploadMessageAttachment(userID, file.Filename, src, file.Size, contentType)
		src.Close()
		if err != nil {
			log.Printf("Error uploading attachment %v for user %v: %v", file.Filename, userID, err)
			results = append(results, models.AttachmentUploadResult{
				FileName: file.Filename,
				Error:    errs.ErrUnableToUploadFile.Error(),
			})
			continue
		}

		results = append(results, models.AttachmentUploadResult{
			FileName: file.Filename,
			Url:      url,
		})
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    results,
	})
}

func (rh *RestHandler) GetUnreadCount(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	unread, err := rh.chatService.GetUnreadCountForUser(userID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    gin.H{"unread": unread},
	})
}

func (rh *RestHandler) UploadUserProfilePhoto(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("profile_photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrNoFileUploaded},
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToOpenUploadedFile},
		})
		return
	}
	defer src.Close()

	fileName := fmt.Sprintf("user_profile_photo_%d", userID)
	url, err := rh.fileManagerService.UploadUserProfilePhoto(fileName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToUploadFile},
		})
		return
	}

	if updateErrs := rh.authService.UpdateUserProfilePhoto(userID, url); updateErrs != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToUpdateProfilePhoto},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    url,
	})
}

func (rh *RestHandler) GetProviders(ctx *gin.Context) {
	pageInt, sizeInt := paginationFromQuery(ctx)
	response, errs := rh.listingService.GetProviders(pageInt, sizeInt)
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) GetHalls(ctx *gin.Context) {
	pageInt, sizeInt := paginationFromQuery(ctx)
	response, errs := rh.listingService.GetHalls(pageInt, sizeInt)
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) GetDresses(ctx *gin.Context) {
	pageInt, sizeInt := paginationFromQuery(ctx)
	response, errs := rh.listingService.GetDresses(pageInt, sizeInt)
	if len(errs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) abortUnauthorized(ctx *gin.Context) {
	log.Println("User id not found")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  []error{errs.ErrUnauthorized},
	})
}

func paginationFromQuery(ctx *gin.Context) (int, int) {
	page := ctx.Query("page")
	size := ctx.Query("size")

	pageInt, err := strconv.Atoi(page)
	if err != nil || pageInt < 1 {
		pageInt = 1
	}

	sizeInt, err := strconv.Atoi(size)
	if err != nil || sizeInt < 1 {
		sizeInt = 10
	}

	return pageInt, sizeInt
}
