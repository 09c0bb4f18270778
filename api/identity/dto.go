package identity

// AuthRequest carries the credentials for both registration and login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the login payload: the player's identity, stats and a
// signed access token.
type AuthResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Solves    int    `json:"solves"`
	BestSteps int    `json:"best_steps"`
	Token     string `json:"token"`
}
