package services

import (
	"fmt"
	"io"
	"path/filepath"

	"weddingChat/internal/enums"
	"weddingChat/internal/interfaces"

	"github.com/google/uuid"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
}

func NewFileManagerService(fileManager interfaces.FileManager) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
	}
}

func (fs *FileManagerService) UploadUserProfilePhoto(fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	return fs.fileManager.UploadFile(fileName, file, fileSize, contentType, enums.FILE_BUCKET_USER_PROFILE)
}

// UploadMessageAttachment stores one attachment under a per-user prefix so
// object names from different uploaders can never collide and bucket
// policies can authorize by prefix.
func (fs *FileManagerService) UploadMessageAttachment(userID uint, originalFileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%d/%s%s", userID, uuid.New().String(), filepath.Ext(originalFileName))
	return fs.fileManager.UploadFile(objectName, file, fileSize, contentType, enums.FILE_BUCKET_MESSAGE_ATTACHMENTS)
}
