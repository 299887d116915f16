package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTableRequest is the request body for creating a table
type CreateTableRequest struct {
	MaxPlayers int `json:"max_players,omitempty"`
}

// TransferHostRequest is the request body for transferring host
type TransferHostRequest struct {
	NewHostID string `json:"new_host_id"`
}

// AddBotRequest is the request body for adding a bot to a table
type AddBotRequest struct {
	Style string `json:"style,omitempty"`
}

// ActionRequest is the request body for a pass or take decision
type ActionRequest struct {
	Action string `json:"action"`
}
