package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/config"
	"tableflip.dev/outline/pkg/logging"
	"tableflip.dev/outline/pkg/render"
	"tableflip.dev/outline/pkg/store"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
	co = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "outline",
		Short: base.Wrap80("Outlines, bullets and checklists on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddConfigArgs(cmd, co)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addEdit(topLevel)
	addShow(topLevel)
	addFiles(topLevel)
	addNew(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what every command needs to reach the stored outlines.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	svc    *app.Service
	layout render.Layout
}

func loadConfig() (*config.Config, error) {
	if co.File != "" {
		return config.LoadFile(co.File)
	}
	return config.Load()
}

// load resolves config, logging and the store. Console logging is only
// allowed for commands that do not take over the terminal.
func load(console bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	lo := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if co.Verbose {
		lo.Level = "debug"
		lo.Console = console
	}
	log, err := logging.New(lo)
	if err != nil {
		return nil, err
	}

	files, err := store.Load(cfg, log)
	if err != nil {
		return nil, err
	}
	layout, err := render.NewLayout(cfg.Editor.IndentWidth, cfg.Editor.PrefixWidth)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		log:    log,
		svc:    app.NewService(files, cfg.DocumentOptions(), log),
		layout: layout,
	}, nil
}

// name picks the outline from the first argument or the configured default.
func (e *env) name(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return e.cfg.File
}

func (e *env) close() {
	_ = e.log.Sync()
}
