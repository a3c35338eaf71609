package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"esplan/internal/resource/issue"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Manage strategic issues",
}

var issuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategic issues",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		col := issue.NewCollection(a.client, a.store, a.notifier)
		if err := col.Fetch(cmd.Context(), listFilter(cmd)); err != nil {
			return errors.New(col.Err())
		}
		for _, it := range col.Items() {
			fmt.Printf("%s  %2d. [%s]  %s\n", it.ID, it.Order, it.Status, it.Name)
		}
		printPagination(col.Pagination())
		return nil
	},
}

var issuesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a strategic issue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		order, _ := cmd.Flags().GetInt("order")

		a := newApp()
		col := issue.NewCollection(a.client, a.store, a.notifier)
		created, err := col.Create(cmd.Context(), issue.StrategicIssue{
			Name:        name,
			Description: desc,
			Order:       order,
		})
		if err != nil || created == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("สร้างประเด็นยุทธศาสตร์แล้ว: %s\n", created.ID)
		return nil
	},
}

var issuesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a strategic issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := map[string]any{}
		for _, flag := range []string{"name", "description", "status"} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				patch[flag] = v
			}
		}
		if cmd.Flags().Changed("order") {
			v, _ := cmd.Flags().GetInt("order")
			patch["order"] = v
		}

		a := newApp()
		col := issue.NewCollection(a.client, a.store, a.notifier)
		updated, err := col.Update(cmd.Context(), args[0], patch)
		if err != nil || updated == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("แก้ไขประเด็นยุทธศาสตร์แล้ว: %s\n", updated.ID)
		return nil
	},
}

var issuesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a strategic issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		col := issue.NewCollection(a.client, a.store, a.notifier)
		if err := col.Delete(cmd.Context(), args[0]); err != nil {
			return errors.New(col.Err())
		}
		fmt.Println("ลบประเด็นยุทธศาสตร์แล้ว")
		return nil
	},
}

func init() {
	addListFlags(issuesListCmd)

	issuesCreateCmd.Flags().String("name", "", "issue name")
	issuesCreateCmd.Flags().String("description", "", "issue description")
	issuesCreateCmd.Flags().Int("order", 0, "display order")
	_ = issuesCreateCmd.MarkFlagRequired("name")

	issuesUpdateCmd.Flags().String("name", "", "issue name")
	issuesUpdateCmd.Flags().String("description", "", "issue description")
	issuesUpdateCmd.Flags().String("status", "", "status")
	issuesUpdateCmd.Flags().Int("order", 0, "display order")

	issuesCmd.AddCommand(issuesListCmd, issuesCreateCmd, issuesUpdateCmd, issuesDeleteCmd)
	rootCmd.AddCommand(issuesCmd)
}
