package services

import (
	"io"

	"canvasChat/internal/enums"
	"canvasChat/internal/interfaces"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
}

func NewFileManagerService(fileManager interfaces.FileManager) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
	}
}

func (fs *FileManagerService) UploadReferenceImage(fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	return fs.fileManager.UploadFile(fileName, file, fileSize, contentType, enums.FILE_BUCKET_REFERENCES)
}

func (fs *FileManagerService) UploadSnapshotImage(fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	return fs.fileManager.UploadFile(fileName, file, fileSize, contentType, enums.FILE_BUCKET_SNAPSHOTS)
}
