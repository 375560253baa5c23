package validator

import (
	"fmt"
	"strings"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// Struct chạy các tag validate trên patch/DTO và gom lỗi thành AppError
func Struct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(playground.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return errors.NewAppError(errors.ErrCodeValidation, "invalid fields: "+strings.Join(fields, ", "), err)
		}
		return errors.NewAppError(errors.ErrCodeValidation, "invalid input", err)
	}
	return nil
}

// ValidateUser validate thông tin user khi tạo mới
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "email is required", nil)
	}
	if err := validate.Var(user.Email, "email"); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid email", err)
	}
	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "password is required", nil)
	}
	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "password must be at least 6 characters", nil)
	}
	if !models.ValidRole(user.Role) {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "invalid role", nil)
	}
	return nil
}

// ValidateHotel validate hotel khi tạo mới
func ValidateHotel(hotel *models.Hotel) error {
	if strings.TrimSpace(hotel.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "hotel name is required", nil)
	}
	if strings.TrimSpace(hotel.Location) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "hotel location is required", nil)
	}
	if hotel.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "price must not be negative", nil)
	}
	if hotel.Rating < 0 || hotel.Rating > 5 {
		return errors.NewAppError(errors.ErrCodeValidation, "rating must be between 0 and 5", nil)
	}
	for i := range hotel.Rooms {
		if err := ValidateRoom(&hotel.Rooms[i]); err != nil {
			return err
		}
	}
	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Type) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "room type is required", nil)
	}
	if room.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "room price must not be negative", nil)
	}
	if room.Capacity < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "room capacity must be at least 1", nil)
	}
	return nil
}

// ParseStayDates kiểm tra định dạng ngày và checkOut sau checkIn, trả về số đêm
func ParseStayDates(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(constants.DateLayout, checkIn)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-in date", err)
	}
	out, err := time.Parse(constants.DateLayout, checkOut)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-out date", err)
	}
	if !out.After(in) {
		return 0, errors.NewAppError(errors.ErrCodeValidation, "check-out must be after check-in", nil)
	}
	return int(out.Sub(in).Hours() / 24), nil
}
