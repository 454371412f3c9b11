package member

import (
	"time"

	"github.com/frahmantamala/gym-management/internal"
)

// CreateMemberDTO is the request payload for registering a member. Dates
// arrive as "YYYY-MM-DD" strings and are coerced here.
type CreateMemberDTO struct {
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Gender    *string `json:"gender,omitempty"`
}

func (dto CreateMemberDTO) Validate() *internal.AppError {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Gender != nil && *dto.Gender != GenderMale && *dto.Gender != GenderFemale {
		return internal.NewValidationFieldError("gender", "gender must be MALE or FEMALE", internal.ErrCodeValidationFailed)
	}
	if dto.BirthDate != nil {
		if _, err := parseDate(*dto.BirthDate); err != nil {
			return internal.NewValidationFieldError("birth_date", "birth_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (dto CreateMemberDTO) birthDate() *time.Time {
	if dto.BirthDate == nil {
		return nil
	}
	t, err := parseDate(*dto.BirthDate)
	if err != nil {
		return nil
	}
	return &t
}

// UpdateMemberDTO carries a partial update; nil fields are left untouched.
type UpdateMemberDTO struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (dto UpdateMemberDTO) Validate() *internal.AppError {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Gender != nil && *dto.Gender != GenderMale && *dto.Gender != GenderFemale {
		return internal.NewValidationFieldError("gender", "gender must be MALE or FEMALE", internal.ErrCodeValidationFailed)
	}
	if dto.BirthDate != nil {
		if _, err := parseDate(*dto.BirthDate); err != nil {
			return internal.NewValidationFieldError("birth_date", "birth_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// updates builds the column map for a partial update and the change set
// recorded in the audit detail payload.
func (dto UpdateMemberDTO) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
	}
	if dto.Address != nil {
		updates["address"] = *dto.Address
	}
	if dto.BirthDate != nil {
		if t, err := parseDate(*dto.BirthDate); err == nil {
			updates["birth_date"] = t
		}
	}
	if dto.Gender != nil {
		updates["gender"] = *dto.Gender
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
