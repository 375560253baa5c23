package config

import (
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary trả về nil khi chưa cấu hình; upload ảnh sẽ bị tắt
func ConnectCloudinary(cfg Config) *cloudinary.Cloudinary {
	if cfg.CloudinaryCloud == "" || cfg.CloudinaryKey == "" || cfg.CloudinarySecret == "" {
		log.Println("Cloudinary chưa được cấu hình, tắt upload ảnh")
		return nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		log.Printf("Lỗi khi khởi tạo Cloudinary: %v", err)
		return nil
	}
	return cld
}
