package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"esplan/internal/dashboard"
	"esplan/internal/resource/thaitime"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the aggregated overview",
	Long: `Fetch all overview statistics in parallel. Without a session the public
legs are used where they exist and the rest degrade to zero.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp()
		summary, err := dashboard.Gather(cmd.Context(), a.client, a.store)
		if err != nil {
			return err
		}

		fmt.Printf("ภาพรวม ณ %s\n\n", thaitime.Format(summary.FetchedAt))
		fmt.Printf("โครงการ:            %d (ดำเนินการ %d, เสร็จสิ้น %d)\n",
			summary.Projects.Total, summary.Projects.Active, summary.Projects.Completed)
		if summary.Projects.TotalBudget > 0 {
			fmt.Printf("งบประมาณรวม:        %.2f บาท\n", summary.Projects.TotalBudget)
		}
		fmt.Printf("ประเด็นยุทธศาสตร์:   %d\n", summary.Issues)
		fmt.Printf("กลยุทธ์:             %d\n", summary.Strategies)
		if summary.Users.Total > 0 {
			fmt.Printf("ผู้ใช้งาน:           %d (ใช้งาน %d)\n", summary.Users.Total, summary.Users.Active)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
