package dto

type ProjectItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	OwnerID     string   `json:"owner_id"`
	SharedWith  []string `json:"shared_with"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	SharedWith  []string `json:"shared_with"`
}

type UpdateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	SharedWith  []string `json:"shared_with"`
}
