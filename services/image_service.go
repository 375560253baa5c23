package services

import (
	"context"
	"fmt"

	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader đẩy file ảnh lên kho ảnh và trả về URL công khai
type ImageUploader interface {
	Upload(ctx context.Context, file interface{}, publicID string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: folder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file interface{}, publicID string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

type ImageService struct {
	uploader ImageUploader
	hotels   *HotelService
	logger   logger.Logger
}

func NewImageService(up ImageUploader, hotels *HotelService, log logger.Logger) *ImageService {
	return &ImageService{uploader: up, hotels: hotels, logger: log}
}

// UploadHotelImage tải ảnh lên rồi gán URL vào hotel
func (s *ImageService) UploadHotelImage(ctx context.Context, hotelID int64, file interface{}) (*models.Hotel, error) {
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrCodeStoreUnavailable, "image storage is not configured", nil)
	}
	if _, err := s.hotels.Get(ctx, hotelID); err != nil {
		return nil, err
	}
	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("hotel_%d", hotelID))
	if err != nil {
		s.logger.Error("Upload ảnh hotel %d lỗi: %v", hotelID, err)
		return nil, errors.NewAppError(errors.ErrCodeStoreUnavailable, "image upload failed", err)
	}
	return s.hotels.SetImage(ctx, hotelID, url)
}
