package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"esplan/internal/resource/project"
	"esplan/internal/resource/thaitime"
	"esplan/internal/transport/rest"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List projects. Without a session the public read-only endpoint is used,
which carries a reduced field set.

Examples:
  esplan projects list
  esplan projects list --status active --q อบรม`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		col := project.NewCollection(a.client, a.store, a.notifier)
		if err := col.Fetch(cmd.Context(), listFilter(cmd)); err != nil {
			return errors.New(col.Err())
		}
		for _, p := range col.Items() {
			line := fmt.Sprintf("%s  [%s]  %s", p.ID, p.Status, p.Name)
			if p.StartDate != nil {
				line += "  " + thaitime.FormatShort(*p.StartDate)
			}
			fmt.Println(line)
		}
		printPagination(col.Pagination())
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		budget, _ := cmd.Flags().GetFloat64("budget")
		dept, _ := cmd.Flags().GetString("department")
		issues, _ := cmd.Flags().GetStringSlice("issue")
		strategies, _ := cmd.Flags().GetStringSlice("strategy")

		a := newApp()
		col := project.NewCollection(a.client, a.store, a.notifier)
		created, err := col.Create(cmd.Context(), project.Project{
			Name:            name,
			Description:     desc,
			Budget:          budget,
			Department:      dept,
			StrategicIssues: issues,
			Strategies:      strategies,
		})
		if err != nil || created == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("สร้างโครงการแล้ว: %s\n", created.ID)
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := map[string]any{}
		for _, flag := range []string{"name", "description", "department", "status"} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				patch[flag] = v
			}
		}
		if cmd.Flags().Changed("budget") {
			v, _ := cmd.Flags().GetFloat64("budget")
			patch["budget"] = v
		}

		a := newApp()
		col := project.NewCollection(a.client, a.store, a.notifier)
		updated, err := col.Update(cmd.Context(), args[0], patch)
		if err != nil || updated == nil {
			return errors.New(col.Err())
		}
		fmt.Printf("แก้ไขโครงการแล้ว: %s\n", updated.ID)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		col := project.NewCollection(a.client, a.store, a.notifier)
		if err := col.Delete(cmd.Context(), args[0]); err != nil {
			return errors.New(col.Err())
		}
		fmt.Println("ลบโครงการแล้ว")
		return nil
	},
}

var projectsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		stats, err := project.FetchStats(cmd.Context(), a.client, a.store)
		if err != nil {
			return err
		}
		fmt.Printf("ทั้งหมด %d  กำลังวางแผน %d  ดำเนินการ %d  เสร็จสิ้น %d  ยกเลิก %d\n",
			stats.Total, stats.Planning, stats.Active, stats.Completed, stats.Cancelled)
		if stats.TotalBudget > 0 {
			fmt.Printf("งบประมาณรวม %.2f บาท\n", stats.TotalBudget)
		}
		return nil
	},
}

// listFilter reads the shared list flags into a query filter.
func listFilter(cmd *cobra.Command) url.Values {
	filter := url.Values{}
	if q, _ := cmd.Flags().GetString("q"); q != "" {
		filter.Set("q", q)
	}
	if status, _ := cmd.Flags().GetString("status"); status != "" {
		filter.Set("status", status)
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		filter.Set("limit", strconv.Itoa(limit))
	}
	if offset, _ := cmd.Flags().GetInt("offset"); offset > 0 {
		filter.Set("offset", strconv.Itoa(offset))
	}
	return filter
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("q", "", "filter by name substring")
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().Int("limit", 0, "page size")
	cmd.Flags().Int("offset", 0, "page offset")
}

func printPagination(p rest.Pagination) {
	fmt.Printf("ทั้งหมด %d รายการ (%d หน้า)\n", p.Total, p.Pages)
}

func init() {
	addListFlags(projectsListCmd)

	projectsCreateCmd.Flags().String("name", "", "project name")
	projectsCreateCmd.Flags().String("description", "", "project description")
	projectsCreateCmd.Flags().Float64("budget", 0, "budget in baht")
	projectsCreateCmd.Flags().String("department", "", "owning department")
	projectsCreateCmd.Flags().StringSlice("issue", nil, "linked strategic issue id (repeatable)")
	projectsCreateCmd.Flags().StringSlice("strategy", nil, "linked strategy id (repeatable)")
	_ = projectsCreateCmd.MarkFlagRequired("name")

	projectsUpdateCmd.Flags().String("name", "", "project name")
	projectsUpdateCmd.Flags().String("description", "", "project description")
	projectsUpdateCmd.Flags().Float64("budget", 0, "budget in baht")
	projectsUpdateCmd.Flags().String("department", "", "owning department")
	projectsUpdateCmd.Flags().String("status", "", "status")

	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd, projectsStatsCmd)
	rootCmd.AddCommand(projectsCmd)
}
