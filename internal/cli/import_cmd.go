package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import activity from a JSON file",
		Long: `Import work sessions, meetings, emails and journal entries from a JSON
file. The file is validated first; nothing is written unless every record
is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}

			var res *service.ImportResult
			err = app.withSpinner(cmd, "Importing...", func() error {
				res, err = app.Import.ImportFile(ctx, userID, args[0])
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), res, func() string {
				var b strings.Builder
				fmt.Fprintf(&b, "Imported %s records from %s\n", formatter.Bold(fmt.Sprint(res.Total())), args[0])
				fmt.Fprintf(&b, "  work sessions    %d\n", res.WorkSessionCount)
				fmt.Fprintf(&b, "  meetings         %d\n", res.MeetingCount)
				fmt.Fprintf(&b, "  emails           %d\n", res.EmailCount)
				fmt.Fprintf(&b, "  journal entries  %d", res.JournalEntryCount)
				return b.String()
			})
		},
	}
}
