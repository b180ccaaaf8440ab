package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/i2p/internal/app"
	"github.com/bft-labs/i2p/internal/cliconfig"
	"github.com/bft-labs/i2p/pkg/log"
)

const longHelp = `i2p maps protocol packet ids to packet names.

The packet table is fetched once at startup from a JSON document with
"serverBound" and "clientBound" arrays, then served from memory. Sources may
be plain http(s) URLs or any go-getter source (file::, git::, s3::, ...).

Configuration is read from $HOME/.i2p/config.toml, then I2P_* environment
variables, then flags; later sources win.`

var exampleUsage = strings.TrimSpace(`
  i2p serve --http-addr :8080
  i2p lookup 0 c2s
  i2p list --source-url file::./packets.json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cliconfig.Logger("error").Error("i2p", log.Err(err))
		os.Exit(1)
	}
}

// cli carries the configuration shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "i2p",
		Short:         "Look up protocol packet names by id and direction",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.i2p/config.toml)")
	pf.StringVar(&c.cfg.SourceURL, "source-url", c.cfg.SourceURL, "packet document location (http(s) URL or go-getter source)")
	pf.DurationVar(&c.cfg.FetchTimeout, "fetch-timeout", c.cfg.FetchTimeout, "timeout for one fetch attempt")
	pf.IntVar(&c.cfg.FetchRetries, "fetch-retries", c.cfg.FetchRetries, "fetch attempts before giving up")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(c), newLookupCmd(c), newListCmd(c))
	return root
}

// load resolves the configuration for cmd: file, then env, then flags.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return fmt.Errorf("apply env config: %w", err)
	}

	return c.cfg.Validate()
}

// newApp builds the application around the configured source.
func (c *cli) newApp(logger log.Logger, opts ...app.Option) *app.App {
	fetcher := app.NewSourceFetcher(app.SourceConfig{
		URL:      c.cfg.SourceURL,
		Timeout:  c.cfg.FetchTimeout,
		Attempts: c.cfg.FetchRetries,
	}, logger)
	return app.New(fetcher, append([]app.Option{app.WithLogger(logger)}, opts...)...)
}
