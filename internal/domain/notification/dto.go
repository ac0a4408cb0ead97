package notification

import "time"

type Response struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

func NewResponse(n Notification) Response {
	return Response{
		ID:          n.ID,
		EmployeeID:  n.EmployeeID,
		Type:        string(n.Type),
		ReferenceID: n.ReferenceID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
