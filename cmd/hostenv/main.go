package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
	"github.com/streamingfast/hostenv"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

// Version is set via ldflags at build time
var version = "dev"

var zlog, _ = logging.PackageLogger("hostenv", "github.com/streamingfast/hostenv/cmd/hostenv")

func init() {
	logging.InstantiateLoggers(logging.WithDefaultLevel(zap.DPanicLevel))
}

func main() {
	Run(
		"hostenv <command>",
		"Identify the WeChat host environment a page runs inside",

		ConfigureVersion(version),
		ConfigureViper("HOSTENV"),

		Command(classifyE,
			"classify [user-agent]",
			"Classify a user agent and runtime capability flags",
			Description(`
				Runs the broad browser classifier, the WeChat ecosystem sub-classifier and
				the full environment resolver over one snapshot of signals, and prints the
				resolved tags with the evidence that justified them.

				The user agent is read from the first argument or --ua. Capability flags
				describe what the page observed in its runtime (wx.miniProgram,
				wx.createGameContext, __wxjs_environment).

				With --raw, only the user agent is printed, for copying.
			`),
			Flags(func(flags *pflag.FlagSet) {
				flags.String("ua", "", "User agent to classify (alternative to the positional argument)")
				flags.Bool("miniprogram-bridge", false, "wx.miniProgram bridge object is present")
				flags.Bool("game-context", false, "wx.createGameContext is a function")
				flags.String("wxjs-environment", "", "Value of the __wxjs_environment variable")
				flags.Bool("no-runtime", false, "No browser-like runtime context at all")
				flags.String("broad-order", "", "Broad rule order: corrected or legacy (default: from config)")
				flags.StringP("output", "o", "", "Output format: text, json or markdown (default: from config)")
				flags.Bool("raw", false, "Print only the raw user agent")
			}),
		),

		Command(explainE,
			"explain <tag>",
			"Show the evidence template of an environment tag, broad category or overview",
			ExactArgs(1),
			Flags(func(flags *pflag.FlagSet) {
				flags.String("style", "dark", "Markdown style: dark, light, notty or ascii")
			}),
		),

		Command(tagsE,
			"tags",
			"List every environment tag with its dispatch action",
		),

		Command(checkE,
			"check [fixtures.yaml]",
			"Run a fixture suite against the classifier",
			Description(`
				Without arguments, runs the built-in fixture suite. With a path, loads a
				YAML suite whose cases are merged onto its 'defaults' block.

				Exits with an error when any case does not produce its expected tags.
			`),
			Flags(func(flags *pflag.FlagSet) {
				flags.String("broad-order", "", "Broad rule order: corrected or legacy (default: from config)")
				flags.BoolP("verbose", "v", false, "Show passing cases too")
			}),
		),

		Command(serveE,
			"serve",
			"Serve classification over HTTP",
			Description(`
				GET /v1/classify classifies the request itself: its User-Agent header and
				the X-Hostenv-Miniprogram-Bridge, X-Hostenv-Game-Context and
				X-Hostenv-Wxjs-Environment headers.

				POST /v1/classify classifies a JSON body of signals.
			`),
			Flags(func(flags *pflag.FlagSet) {
				flags.String("listen-addr", "", "Listen address (default: from config)")
				flags.String("broad-order", "", "Broad rule order: corrected or legacy (default: from config)")
			}),
		),

		ConfigCommand,

		OnCommandError(func(err error) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			zlog.Debug("command error", zap.Error(err))
			os.Exit(1)
		}),
	)
}

// newClassifier builds a classifier honoring --broad-order over the config
func newClassifier(cmd *cobra.Command, config *hostenv.Config) (*hostenv.Classifier, error) {
	orderFlag, err := cmd.Flags().GetString("broad-order")
	if err != nil {
		return nil, fmt.Errorf("failed to get broad-order flag: %w", err)
	}

	order := config.ParsedBroadOrder()
	if orderFlag != "" {
		order, err = hostenv.ParseBroadOrder(orderFlag)
		if err != nil {
			return nil, err
		}
	}

	zlog.Debug("using broad order", zap.String("order", string(order)))
	return hostenv.NewClassifier(hostenv.WithBroadOrder(order)), nil
}
