package profile

type CreateProfileRequest struct {
	FullName       string   `json:"full_name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          *string  `json:"phone"`
	Role           string   `json:"role" binding:"required"`
	EmploymentType *string  `json:"employment_type"`
	HourlyRate     float64  `json:"hourly_rate" binding:"gte=0"`
	Salary         *float64 `json:"salary"`
	StartDate      *string  `json:"start_date"`
}

type UpdateProfileRequest struct {
	FullName       string   `json:"full_name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          *string  `json:"phone"`
	Role           string   `json:"role" binding:"required"`
	EmploymentType *string  `json:"employment_type"`
	HourlyRate     float64  `json:"hourly_rate" binding:"gte=0"`
	Salary         *float64 `json:"salary"`
	IsActive       *bool    `json:"is_active" binding:"required"`
	StartDate      *string  `json:"start_date"`
}

type ProfileResponse struct {
	ID             string   `json:"id"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone,omitempty"`
	Role           string   `json:"role"`
	EmploymentType *string  `json:"employment_type,omitempty"`
	HourlyRate     float64  `json:"hourly_rate"`
	Salary         *float64 `json:"salary,omitempty"`
	IsActive       bool     `json:"is_active"`
	StartDate      *string  `json:"start_date,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// OperationRequest drives the combined paginate/export endpoint. Search is a
// case-insensitive substring match OR'd across full_name, email and role.
type OperationRequest struct {
	Operation string `json:"operation" binding:"required,oneof=paginate export"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Search    string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Format    string `json:"format" binding:"omitempty,oneof=csv json xlsx"`
}
