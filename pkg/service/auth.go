package service

import (
	"fmt"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/credentials"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	"github.com/Pradeep-10x/synapse-cli/pkg/prompter"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login handles user login
func (s *AuthService) Login() error {
	// Check if already logged in
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		formatter.PrintWarning("Already logged in as %s", creds.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	// Prompt for email and password
	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}

	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Initialize HTTP client
	client.Init()

	formatter.PrintInfo("Authenticating...")
	loginResp, err := api.Login(email, password)
	if err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	return s.installSession(loginResp)
}

// Register handles account creation
func (s *AuthService) Register() error {
	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	username, err := prompter.PromptString("Username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	displayName, err := prompter.PromptString("Display name: ")
	if err != nil {
		return err
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	confirm, err := prompter.PromptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	client.Init()

	formatter.PrintInfo("Creating account...")
	loginResp, err := api.Register(api.RegisterRequest{
		Email:       email,
		Username:    username,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		formatter.PrintError("Registration failed: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Account created!")
	return s.installSession(loginResp)
}

// installSession saves credentials and arms the HTTP client
func (s *AuthService) installSession(loginResp *api.LoginResponse) error {
	client.SetAuthToken(loginResp.AccessToken)

	expiresAt := time.Now().Add(time.Duration(loginResp.ExpiresIn) * time.Second)

	creds := &credentials.Credentials{
		AccessToken:  loginResp.AccessToken,
		RefreshToken: loginResp.RefreshToken,
		ExpiresAt:    expiresAt,
		UserID:       loginResp.User.ID,
		Username:     loginResp.User.Username,
		Email:        loginResp.User.Email,
		DisplayName:  loginResp.User.DisplayName,
	}

	if err := credentials.Save(creds); err != nil {
		formatter.PrintError("Failed to save credentials: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Login successful!")
	formatter.PrintInfo("Logged in as %s", formatter.Bold.Sprint(loginResp.User.Username))
	fmt.Printf("\n")
	keyValues := map[string]interface{}{
		"Username":     loginResp.User.Username,
		"Email":        loginResp.User.Email,
		"Display Name": loginResp.User.DisplayName,
		"Followers":    loginResp.User.FollowerCount,
		"Following":    loginResp.User.FollowingCount,
		"Posts":        loginResp.User.PostCount,
	}
	formatter.PrintKeyValue(keyValues)

	return nil
}

// Logout handles user logout
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		formatter.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}

	if !confirm {
		return nil
	}

	// Best effort server-side invalidation; local teardown happens
	// either way.
	_ = RequireSession()
	if err := api.Logout(); err != nil {
		logger.Debug("Server-side logout failed", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		formatter.PrintError("Failed to delete credentials: %v", err)
		return err
	}

	client.ClearAuthToken()

	formatter.PrintSuccess("✓ Logged out successfully")
	return nil
}

// GetMe gets current user information
func (s *AuthService) GetMe() error {
	if err := RequireSession(); err != nil {
		return err
	}

	formatter.PrintInfo("Fetching user information...")
	user, err := api.GetCurrentUser()
	if err != nil {
		if api.IsUnauthorized(err) {
			formatter.PrintError("Session expired. Please login again.")
			credentials.Delete()
			return fmt.Errorf("unauthorized")
		}
		formatter.PrintError("Failed to fetch user: %v", err)
		return err
	}

	fmt.Printf("\n")
	keyValues := map[string]interface{}{
		"Username":     user.Username,
		"Email":        user.Email,
		"Display Name": user.DisplayName,
		"Bio":          user.Bio,
		"Location":     user.Location,
		"Followers":    user.FollowerCount,
		"Following":    user.FollowingCount,
		"Posts":        user.PostCount,
		"Private":      user.IsPrivate,
		"Created":      user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	formatter.PrintKeyValue(keyValues)

	return nil
}

// RefreshToken refreshes the access token
func (s *AuthService) RefreshToken() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds == nil {
		return fmt.Errorf("not logged in")
	}

	client.Init()

	logger.Debug("Refreshing token")
	refreshResp, err := api.Refresh(creds.RefreshToken)
	if err != nil {
		if api.IsUnauthorized(err) {
			credentials.Delete()
			return fmt.Errorf("refresh token expired, please login again")
		}
		return err
	}

	creds.AccessToken = refreshResp.AccessToken
	creds.ExpiresAt = time.Now().Add(time.Duration(refreshResp.ExpiresIn) * time.Second)

	if err := credentials.Save(creds); err != nil {
		return err
	}

	logger.Debug("Token refreshed successfully")
	return nil
}

// RequireSession loads stored credentials, refreshing the access token
// if it is expired, and arms the HTTP client. Returns an error if no
// usable session exists.
func RequireSession() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds == nil || creds.AccessToken == "" {
		formatter.PrintError("Not logged in. Please run 'synapse auth login'")
		return fmt.Errorf("not authenticated")
	}

	client.Init()

	if creds.IsExpired() {
		svc := NewAuthService()
		if err := svc.RefreshToken(); err != nil {
			formatter.PrintError("Failed to refresh token. Please login again.")
			return err
		}
		creds, err = credentials.Load()
		if err != nil || creds == nil {
			return fmt.Errorf("not authenticated")
		}
	}

	client.SetAuthToken(creds.AccessToken)
	return nil
}

// CurrentSessionCreds returns the stored credentials after
// RequireSession-style validation, for callers that need the identity.
func CurrentSessionCreds() (*credentials.Credentials, error) {
	if err := RequireSession(); err != nil {
		return nil, err
	}
	return credentials.Load()
}
