package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"esplan/internal/resource/user"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		col := user.NewCollection(a.client, a.store, a.notifier)
		if err := col.Fetch(cmd.Context(), listFilter(cmd)); err != nil {
			return errors.New(col.Err())
		}
		for _, u := range col.Items() {
			state := "ใช้งาน"
			if !u.Active {
				state = "ระงับ"
			}
			fmt.Printf("%s  %-30s  %-10s  %s\n", u.ID, u.Email, u.Role, state)
		}
		printPagination(col.Pagination())
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		dept, _ := cmd.Flags().GetString("department")

		if password == "" {
			var err error
			password, err = promptPassword("Password for new account: ")
			if err != nil {
				return err
			}
		}

		a := newApp()
		created, err := user.CreateWithPassword(cmd.Context(), a.client, user.User{
			Email:      email,
			Role:       role,
			FirstName:  firstName,
			LastName:   lastName,
			Department: dept,
		}, password)
		if err != nil {
			return err
		}
		fmt.Printf("สร้างผู้ใช้แล้ว: %s\n", created.ID)
		return nil
	},
}

var usersActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Re-enable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := user.Activate(cmd.Context(), a.client, args[0]); err != nil {
			return err
		}
		fmt.Println("เปิดใช้งานบัญชีแล้ว")
		return nil
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Disable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := user.Deactivate(cmd.Context(), a.client, args[0]); err != nil {
			return err
		}
		fmt.Println("ระงับบัญชีแล้ว")
		return nil
	},
}

var usersPasswordCmd = &cobra.Command{
	Use:   "change-password <id>",
	Short: "Set a new password for a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			password, err = promptPassword("New password: ")
			if err != nil {
				return err
			}
		}
		a := newApp()
		if err := user.ChangePassword(cmd.Context(), a.client, args[0], password); err != nil {
			return err
		}
		fmt.Println("เปลี่ยนรหัสผ่านแล้ว")
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		col := user.NewCollection(a.client, a.store, a.notifier)
		if err := col.Delete(cmd.Context(), args[0]); err != nil {
			return errors.New(col.Err())
		}
		fmt.Println("ลบผู้ใช้แล้ว")
		return nil
	},
}

var usersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show user account statistics",
	Long: `Show user account statistics. Without an admin session a zeroed
summary is shown; the protected endpoint is never called.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		stats, err := user.FetchStats(cmd.Context(), a.client, a.store)
		if err != nil {
			return err
		}
		fmt.Printf("ทั้งหมด %d  ใช้งาน %d  ระงับ %d  ผู้ดูแลระบบ %d\n",
			stats.Total, stats.Active, stats.Inactive, stats.Admins)
		return nil
	},
}

func init() {
	addListFlags(usersListCmd)

	usersCreateCmd.Flags().String("email", "", "account email")
	usersCreateCmd.Flags().String("password", "", "password (prompted when omitted)")
	usersCreateCmd.Flags().String("role", "department", "role: admin or department")
	usersCreateCmd.Flags().String("first-name", "", "first name")
	usersCreateCmd.Flags().String("last-name", "", "last name")
	usersCreateCmd.Flags().String("department", "", "department")
	_ = usersCreateCmd.MarkFlagRequired("email")

	usersPasswordCmd.Flags().String("password", "", "new password (prompted when omitted)")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersActivateCmd,
		usersDeactivateCmd, usersPasswordCmd, usersDeleteCmd, usersStatsCmd)
	rootCmd.AddCommand(usersCmd)
}
