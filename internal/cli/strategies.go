package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"esplan/internal/resource/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Manage strategies",
}

var strategiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies",
	Long: `List strategies. Requires a session; strategies have no public
read endpoint.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		col := strategy.NewCollection(a.client, a.store, a.notifier)
		if err := col.Fetch(cmd.Context(), listFilter(cmd)); err != nil {
			return errors.New(col.Err())
		}
		for _, st := range col.Items() {
			fmt.Printf("%s  [%s]  %s (ประเด็น: %s)\n", st.ID, st.Status, st.Name, st.StrategicIssueID)
		}
		printPagination(col.Pagination())
		return nil
	},
}

var strategiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a strategy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		issueID, _ := cmd.Flags().GetString("issue")

		a := newApp()
		col := strategy.NewCollection(a.client, a.store, a.notifier)
		created, err := col.Create(cmd.Context(), strategy.Strategy{
			Name:             name,
			Description:      desc,
			StrategicIssueID: issueID,
		})
		if err != nil || created == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("สร้างกลยุทธ์แล้ว: %s\n", created.ID)
		return nil
	},
}

var strategiesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := map[string]any{}
		flags := map[string]string{
			"name":        "name",
			"description": "description",
			"status":      "status",
			"issue":       "strategic_issue_id",
		}
		for flag, field := range flags {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				patch[field] = v
			}
		}

		a := newApp()
		col := strategy.NewCollection(a.client, a.store, a.notifier)
		updated, err := col.Update(cmd.Context(), args[0], patch)
		if err != nil || updated == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("แก้ไขกลยุทธ์แล้ว: %s\n", updated.ID)
		return nil
	},
}

var strategiesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		col := strategy.NewCollection(a.client, a.store, a.notifier)
		if err := col.Delete(cmd.Context(), args[0]); err != nil {
			return errors.New(col.Err())
		}
		fmt.Println("ลบกลยุทธ์แล้ว")
		return nil
	},
}

func init() {
	addListFlags(strategiesListCmd)

	strategiesCreateCmd.Flags().String("name", "", "strategy name")
	strategiesCreateCmd.Flags().String("description", "", "strategy description")
	strategiesCreateCmd.Flags().String("issue", "", "parent strategic issue id")
	_ = strategiesCreateCmd.MarkFlagRequired("name")

	strategiesUpdateCmd.Flags().String("name", "", "strategy name")
	strategiesUpdateCmd.Flags().String("description", "", "strategy description")
	strategiesUpdateCmd.Flags().String("status", "", "status")
	strategiesUpdateCmd.Flags().String("issue", "", "parent strategic issue id")

	strategiesCmd.AddCommand(strategiesListCmd, strategiesCreateCmd, strategiesUpdateCmd, strategiesDeleteCmd)
	rootCmd.AddCommand(strategiesCmd)
}
