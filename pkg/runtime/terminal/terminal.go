package terminal

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/runtime/terminal/export"
	"github.com/hm-tools/stay-atlas/pkg/services/config"
	"github.com/hm-tools/stay-atlas/pkg/services/report"
	"github.com/hm-tools/stay-atlas/pkg/store/postgres"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

const dateLayout = "02-01-2006"

// CLI is the one-shot terminal interface: connect, generate a report,
// print it, exit.
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

type Options struct {
	Output io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stay-atlas",
		Short: "Hotel analytics reporting tool",
	}

	cmd.AddCommand(newReportCmd(cli.reporter))

	return cmd
}

type reportCmd struct {
	profilesPath string
	profile      string
	from         string
	to           string
	topN         int
	reporter     *export.Reporter
}

func newReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &reportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an analytics report",
		RunE:  rc.run,
	}

	home, _ := os.UserHomeDir()
	defaultProfiles := fmt.Sprintf("%s/.stay-atlas/profiles.ini", home)

	cmd.Flags().StringVar(&rc.profilesPath, "profiles", defaultProfiles, "Path to the connection profiles file")
	cmd.Flags().StringVar(&rc.profile, "profile", "default", "Connection profile to use")
	cmd.Flags().StringVar(&rc.from, "from", "", "Window start (DD-MM-YYYY, inclusive)")
	cmd.Flags().StringVar(&rc.to, "to", "", "Window end (DD-MM-YYYY, exclusive)")
	cmd.Flags().IntVar(&rc.topN, "top", report.DefaultTopN, "Size of the top-rooms and top-services lists")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	window, err := rc.window()
	if err != nil {
		return err
	}

	registry, err := config.NewRegistry(rc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	dsn, err := registry.GetDSN(ctx, rc.profile)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	st, err := postgres.NewStore(db)
	if err != nil {
		return err
	}

	rep, err := report.NewGenerator(st, rc.topN).GenerateReport(ctx, window)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return rc.reporter.Handle(rep)
}

func (rc *reportCmd) window() (domain.Window, error) {
	if rc.from == "" && rc.to == "" {
		return domain.AllTimeWindow(), nil
	}
	if rc.from == "" || rc.to == "" {
		return domain.Window{}, fmt.Errorf("--from and --to must be provided together")
	}

	start, err := time.Parse(dateLayout, rc.from)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid --from date %q, expected DD-MM-YYYY", rc.from)
	}
	end, err := time.Parse(dateLayout, rc.to)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid --to date %q, expected DD-MM-YYYY", rc.to)
	}
	return domain.NewWindow(start, end), nil
}
