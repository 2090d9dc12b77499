package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alerta-nampula/alerta/internal/models"
	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office account management",
	}

	cmd.AddCommand(newAdminAddCmd())
	cmd.AddCommand(newAdminListCmd())
	return cmd
}

func newAdminAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
		email      string
		master     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a back-office account",
		Long:  "Creates an admin account for the back-office API. The password is read\nfrom the terminal without echo.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminAdd(cmd, configPath, name, email, master)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "alerta.yaml", "path to config file")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().BoolVar(&master, "master", false, "grant master level (settings and account management)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func runAdminAdd(cmd *cobra.Command, configPath, name, email string, master bool) error {
	out := cmd.OutOrStdout()

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	st, err := store.New(store.Opts{DB: gormDB})
	if err != nil {
		return err
	}

	password, err := promptPassword(out)
	if err != nil {
		return err
	}

	level := models.AdminRegular
	if master {
		level = models.AdminMaster
	}
	admin, err := st.CreateAdmin(name, email, password, level)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s account %s (id %d)\n", admin.Level, admin.Email, admin.ID)
	return nil
}

// promptPassword reads the password twice without echo and requires both
// entries to match.
func promptPassword(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}

func newAdminListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List back-office accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "alerta.yaml", "path to config file")
	return cmd
}

func runAdminList(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	st, err := store.New(store.Opts{DB: gormDB})
	if err != nil {
		return err
	}

	admins, err := st.AdminUsers()
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		fmt.Fprintln(out, "No accounts yet. Create one with: alerta admin add")
		return nil
	}
	for _, a := range admins {
		fmt.Fprintf(out, "%4d  %-8s  %-30s  %s\n", a.ID, a.Level, a.Email, a.Name)
	}
	return nil
}
