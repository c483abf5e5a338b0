package service

import (
	"context"
	"fmt"
	"log"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
)

// ImageImportService pulls images from a shared Drive folder, compresses them,
// and attaches the resulting data URIs to a product. Per-file failures are
// collected and reported without aborting the batch.
type ImageImportService struct {
	driveService DriveServiceInterface
	compressor   *ImageCompressor
	products     repository.ProductRepositoryInterface
}

// NewImageImportService creates a new ImageImportService
func NewImageImportService(driveService DriveServiceInterface, compressor *ImageCompressor, products repository.ProductRepositoryInterface) *ImageImportService {
	return &ImageImportService{
		driveService: driveService,
		compressor:   compressor,
		products:     products,
	}
}

// ImportProductImages imports every image in folderID into the product's
// image list. Returns per-batch stats: total seen, imported, failed.
func (s *ImageImportService) ImportProductImages(ctx context.Context, productID, folderID string) (*models.ImageImportResponse, error) {
	log.Printf("🔄 Starting image import for product=%s from folder=%s", productID, folderID)

	// Validate the product before touching Drive
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	driveImages, err := s.driveService.ListImages(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images from Drive: %w", err)
	}

	result := &models.ImageImportResponse{Total: len(driveImages)}
	var imported []string

	for _, img := range driveImages {
		data, err := s.driveService.DownloadImage(img.ID)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", img.Name, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", img.Name, err))
			continue
		}

		compressed, err := s.compressor.Compress(ImageFile{
			Name:         img.Name,
			MIMEType:     img.MIMEType,
			DeclaredSize: int64(len(data)),
			Data:         data,
		})
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", img.Name, err)
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		imported = append(imported, compressed)
	}

	if len(imported) > 0 {
		if err := s.products.AppendImages(ctx, productID, imported); err != nil {
			return nil, err
		}
	}

	result.Imported = len(imported)
	log.Printf("✅ Image import finished: total=%d, imported=%d, failed=%d", result.Total, result.Imported, result.Failed)
	return result, nil
}
