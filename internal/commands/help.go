package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for dayrep",
	Long:  `Display detailed help for all dayrep commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dayrep %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗  █████╗ ██╗   ██╗██████╗ ███████╗██████╗
██╔══██╗██╔══██╗╚██╗ ██╔╝██╔══██╗██╔════╝██╔══██╗
██║  ██║███████║ ╚████╔╝ ██████╔╝█████╗  ██████╔╝
██║  ██║██╔══██║  ╚██╔╝  ██╔══██╗██╔══╝  ██╔═══╝
██████╔╝██║  ██║   ██║   ██║  ██║███████╗██║
╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝

dayrep - Daily report client

COMMANDS:

  login                   Sign in to the report service
    -e, --email           Email address (skips the interactive form)
    -p, --password        Password

  register                Create a new account (same flags as login)
  logout                  Sign out and clear the stored session
  whoami                  Show the signed-in user and report count

  forgot-password <email> Request a password reset email
  reset-password <token> <new-password>
                          Set a new password using a reset token

  add <title>             Create a new report with smart parsing
    -c, --content         Report content
    -d, --date            Report date (yyyy-mm-dd, today, yesterday)
    -t, --tag             Tag name or id
    --progress            Progress percentage (0-100)
    --remaining           Remaining hours
    --issue               Issue encountered
    --solution            Solution applied
    -i, --interactive     Force the interactive wizard

    Smart syntax:
      #tag          Set the tag
      +80%          Set progress
      2h            Set remaining hours
      date:today    Set the report date

    Example:
      dayrep add "Fix importer #backend +80% 2h date:yesterday"

  ls                      Browse reports with the interactive paged view
    -d, --date            Filter by date
    -t, --tag             Filter by tag id
    -a, --all             Fetch every matching report without paging
    --plain               Plain table output
    --json                JSON output

    Quick actions:
      ←/→           Previous/next page
      f             Date filter
      t             Cycle tag filter
      a             Clear filters
      d             Delete selected report
      r             Reload
      esc/q         Quit

  search <term>           Search reports by title or content
    -a, --all             Fetch all matches without paging
    --plain, --json       Non-interactive output

  show <id>               Show a single report
  rm <id>                 Delete a report (-y to skip confirmation)
  tags                    List the available tags
  version                 Show version information
  help                    Show this help

`)
}
