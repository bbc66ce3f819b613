package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
)

var permPages string

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Page permission management",
	Long:  "Inspect and edit which pages each user may open.",
	RunE:  runPermissionsList,
}

var permissionsSetCmd = &cobra.Command{
	Use:   "set <userId>",
	Short: "Replace a user's allowed pages",
	Long:  "Replace the allowed page list for one user, e.g.\n  htfs permissions set 2 --pages /dashboard,/data-grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runPermissionsSet,
}

var permissionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default permissions",
	RunE:  runPermissionsReset,
}

var permissionsPagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List manageable pages",
	RunE:  runPermissionsPages,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.AddCommand(permissionsSetCmd)
	permissionsCmd.AddCommand(permissionsResetCmd)
	permissionsCmd.AddCommand(permissionsPagesCmd)

	permissionsSetCmd.Flags().StringVar(&permPages, "pages", "", "comma-separated page paths")
}

func runPermissionsList(cmd *cobra.Command, args []string) error {
	svc, err := newPermissionService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	perms := svc.GetUserPermissions()
	if getFormat() == "json" {
		return output.JSON(perms)
	}

	rows := make([][]string, 0, len(perms))
	for _, p := range perms {
		pages := strconv.Itoa(len(p.AllowedPages)) + " pages"
		if p.Role == "admin" {
			pages = "all (admin)"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.UserID), p.Username, p.Name, p.Role, pages,
		})
	}
	output.Table([]string{"ID", "Username", "Name", "Role", "Access"}, rows)
	return nil
}

func runPermissionsSet(cmd *cobra.Command, args []string) error {
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		output.Error("invalid user id: " + args[0])
		return nil
	}

	var pages []string
	for _, p := range strings.Split(permPages, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}

	svc, err := newPermissionService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if svc.GetUserPermission(userID) == nil {
		output.Error("unknown user id: " + args[0])
		return nil
	}
	if err := svc.UpdateUserPermission(userID, pages); err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Success("Permissions updated")
	return nil
}

func runPermissionsReset(cmd *cobra.Command, args []string) error {
	svc, err := newPermissionService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if err := svc.ResetPermissions(); err != nil {
		output.Error(err.Error())
		return nil
	}
	output.Success("Permissions reset to defaults")
	return nil
}

func runPermissionsPages(cmd *cobra.Command, args []string) error {
	if getFormat() == "json" {
		return output.JSON(permission.AllPages)
	}
	rows := make([][]string, 0, len(permission.AllPages))
	for _, p := range permission.AllPages {
		rows = append(rows, []string{p.ID, p.Path, p.Description})
	}
	output.Table([]string{"ID", "Path", "Description"}, rows)
	return nil
}
