package main

import (
	"fmt"

	"gala/internal/database"
	"gala/internal/repository"
	"gala/internal/service"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		if err := database.AutoMigrate(a.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage CMS administrators",
}

var adminCreateFlags struct {
	email, password, name, role string
}

var adminCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create an administrator account",
	Example: `  server admin create --email admin@turkmengala.com --password s3cret --name "Admin User"`,
	RunE:    runAdminCreate,
}

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminCreateFlags.email, "email", "", "admin email (required)")
	f.StringVar(&adminCreateFlags.password, "password", "", "admin password (required)")
	f.StringVar(&adminCreateFlags.name, "name", "Admin User", "display name")
	f.StringVar(&adminCreateFlags.role, "role", "super_admin", "admin or super_admin")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	if err := database.AutoMigrate(a.db); err != nil {
		return err
	}
	svc := service.NewAdminAuthService(a.cfg, repository.NewAdminRepository(a.db))
	admin, err := svc.Create(cmd.Context(), service.CreateAdminInput{
		Email:    adminCreateFlags.email,
		Password: adminCreateFlags.password,
		Name:     adminCreateFlags.name,
		Role:     adminCreateFlags.role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %d (%s, %s)\n", admin.ID, admin.Email, admin.Role)
	return nil
}
