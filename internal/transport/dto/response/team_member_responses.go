package response

type MessageResponse struct {
	Message string `json:"message"`
}

type ItemResponse struct {
	ItemId int64 `json:"item_id"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	TeamMemberDeletedMessage = "TeamMember deleted successfully"
	HealthStatusOK           = "ok"
)
