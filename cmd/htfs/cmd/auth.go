package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your session - login, logout, status.",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your account",
	Long:  "Login with username and password. When the API is unreachable the built-in demo accounts still work offline.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your account",
	Long:  "Logout and clear the stored session.",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE:  runStatus,
}

var usernameFlag string

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringVarP(&usernameFlag, "username", "u", "", "username")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := usernameFlag
	if username == "" {
		username = prompt("Username")
	}
	password := promptSecret("Password")

	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Info("Logging in...")
	data, err := svc.Login(context.Background(), username, password)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if strings.HasPrefix(data.Token, "mock-token-") {
		output.Warning("API unreachable, logged in with a demo account")
	}
	output.Success("Logged in successfully!")
	fmt.Println()
	output.KeyValue([][]string{
		{"User", data.User.Name},
		{"Username", data.User.Username},
		{"Role", data.User.Role},
	})
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if err := svc.Logout(); err != nil {
		output.Error("Failed to logout: " + err.Error())
		return nil
	}
	output.Success("Logged out successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, sess, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	user, ok := sess.CurrentUser()
	if !ok || !sess.IsAuthenticated() {
		if getFormat() == "json" {
			return output.JSON(map[string]any{"logged_in": false})
		}
		output.Info("Not logged in")
		output.Info("Run 'htfs auth login' to login")
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(map[string]any{
			"logged_in": true,
			"user_id":   user.ID,
			"username":  user.Username,
			"name":      user.Name,
			"role":      user.Role,
		})
	}

	output.Success("Logged in")
	fmt.Println()
	output.KeyValue([][]string{
		{"User", user.Name},
		{"Username", user.Username},
		{"Role", user.Role},
	})
	return nil
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

func promptSecret(label string) string {
	fmt.Printf("%s: ", label)
	bytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(bytes)
}
