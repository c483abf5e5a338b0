package service

// DriveImage describes one image file found in a shared Drive folder
type DriveImage struct {
	ID       string
	Name     string
	MIMEType string
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListImages(folderID string) ([]DriveImage, error)
	DownloadImage(fileID string) ([]byte, error)
}
