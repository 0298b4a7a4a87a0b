package notification

type CreateNotificationRequest struct {
	RecipientProfileID string  `json:"recipient_profile_id" binding:"required,uuid"`
	Title              string  `json:"title" binding:"required,max=200"`
	Message            string  `json:"message" binding:"required"`
	Type               string  `json:"type" binding:"omitempty,oneof=info success warning error"`
	ActionType         *string `json:"action_type"`
	RelatedID          *string `json:"related_id" binding:"omitempty,uuid"`
	Priority           string  `json:"priority" binding:"omitempty,oneof=low normal high"`
}

type NotificationResponse struct {
	ID                 string  `json:"id"`
	RecipientProfileID string  `json:"recipient_profile_id"`
	Title              string  `json:"title"`
	Message            string  `json:"message"`
	Type               string  `json:"type"`
	ActionType         *string `json:"action_type,omitempty"`
	RelatedID          *string `json:"related_id,omitempty"`
	Priority           string  `json:"priority"`
	IsRead             bool    `json:"is_read"`
	CreatedAt          string  `json:"created_at"`
}
