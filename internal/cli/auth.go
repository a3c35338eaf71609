package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"esplan/internal/auth"
	"esplan/internal/resource/thaitime"
	"esplan/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session locally",
	Long: `Authenticate against the API and persist the session under the
configured session directory.

Examples:
  esplan login --email admin@esplan.local
  esplan login --email admin@esplan.local --remember`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		remember, _ := cmd.Flags().GetBool("remember")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			var err error
			password, err = promptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		a := newApp()
		sess, err := a.auth.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		a.store.Save(sess.User, sess.Token)
		a.store.SetRemember(remember)

		fmt.Printf("เข้าสู่ระบบสำเร็จ: %s\n", displayName(sess.User))
		if exp, ok := session.PeekExpiry(sess.Token); ok {
			fmt.Printf("เซสชันหมดอายุ: %s\n", thaitime.Format(exp))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear local state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		a.auth.Logout(cmd.Context())
		fmt.Println("ออกจากระบบแล้ว")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the locally stored session",
	RunE: func(_ *cobra.Command, _ []string) error {
		a := newApp()
		sess := a.store.Read()
		if sess == nil {
			fmt.Println("ยังไม่ได้เข้าสู่ระบบ")
			return nil
		}
		fmt.Printf("ชื่อ:       %s\n", displayName(sess.User))
		fmt.Printf("อีเมล:      %s\n", sess.User.Email)
		fmt.Printf("บทบาท:     %s\n", sess.User.Role)
		if sess.User.Department != "" {
			fmt.Printf("หน่วยงาน:   %s\n", sess.User.Department)
		}
		if sess.User.Position != "" {
			fmt.Printf("ตำแหน่ง:    %s\n", sess.User.Position)
		}
		fmt.Printf("จดจำฉัน:    %v\n", a.store.Remembered())
		if exp, ok := session.PeekExpiry(sess.Token); ok {
			fmt.Printf("หมดอายุ:    %s\n", thaitime.Format(exp))
		}
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the stored session against the server",
	Long: `Resume the stored session: verify the token with the server and clear
local state if it is no longer accepted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		switch a.auth.Resume(cmd.Context()) {
		case auth.StateValid:
			fmt.Println("เซสชันยังใช้งานได้")
		default:
			fmt.Println("ไม่มีเซสชันที่ใช้งานได้ กรุณาเข้าสู่ระบบ")
		}
		return nil
	},
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// displayName prefers the Thai name when present.
func displayName(p session.Profile) string {
	if p.FirstNameTH != "" {
		return p.FirstNameTH + " " + p.LastNameTH
	}
	return p.FirstName + " " + p.LastName
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	loginCmd.Flags().Bool("remember", false, "keep the session across restarts")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, verifyCmd)
}
