package project

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	ClientID    string  `json:"client_id" binding:"required,uuid"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	ClientID    string  `json:"client_id" binding:"required,uuid"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"required,oneof=active completed on_hold"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}
