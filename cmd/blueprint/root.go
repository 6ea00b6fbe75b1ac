package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/blueprint/compiler/gen"
	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/store"
)

// envPrefix is the prefix of every environment variable read by the CLI.
const envPrefix = "BLUEPRINT_"

// settings holds the resolved CLI configuration. Sources apply in order:
// built-in defaults, the YAML config file, BLUEPRINT_* variables, flags.
type settings struct {
	Project   string   `yaml:"project"`
	Out       string   `yaml:"out"`
	Workers   int      `yaml:"workers"`
	Namespace string   `yaml:"namespace"`
	Timestamp string   `yaml:"timestamp"`
	LogLevel  string   `yaml:"logLevel"`
	Disable   []string `yaml:"disable"`
}

func defaultSettings() settings {
	return settings{
		Out:       ".",
		Namespace: gen.DefaultNamespace,
		LogLevel:  "info",
	}
}

// app is the state shared by all subcommands.
type app struct {
	lookupEnv func(string) (string, bool)

	// flag values, applied only when set on the command line
	configFile string
	project    string
	out        string
	workers    int
	namespace  string
	timestamp  string
	disable    []string
	verbose    bool

	settings settings
	logger   *slog.Logger
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{lookupEnv: lookupEnv}
	cmd := &cobra.Command{
		Use:          "blueprint",
		Short:        "Generate Laravel migrations and models from a schema document",
		Long:         `blueprint reads a schema document (JSON, YAML or MessagePack) describing models, fields and relationships, and emits Laravel create-table migrations, Eloquent model classes and pivot-table migrations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "YAML config file (env BLUEPRINT_CONFIG)")
	f.StringVarP(&a.project, "project", "p", "", "project id (default: the document's active project)")
	f.IntVar(&a.workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	f.StringVar(&a.namespace, "namespace", "", "namespace of model classes (default: App\\Models)")
	f.StringVar(&a.timestamp, "timestamp", "", "stamp of the first migration (default: 1970-01-01 00:00:00)")
	f.StringSliceVar(&a.disable, "disable", nil, "features to disable: migrations, models, pivots")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		a.generateCmd(),
		a.previewCmd(),
		a.pivotsCmd(),
		a.modelsCmd(),
		a.watchCmd(),
		a.snapshotCmd(),
	)
	return cmd
}

// resolve merges the configuration sources and builds the logger.
func (a *app) resolve(cmd *cobra.Command) error {
	s := defaultSettings()
	path := a.configFile
	if !cmd.Flags().Changed("config") {
		path, _ = a.env("CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := a.applyEnv(&s); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("project") {
		s.Project = a.project
	}
	if flags.Changed("out") {
		s.Out = a.out
	}
	if flags.Changed("workers") {
		s.Workers = a.workers
	}
	if flags.Changed("namespace") {
		s.Namespace = a.namespace
	}
	if flags.Changed("timestamp") {
		s.Timestamp = a.timestamp
	}
	if flags.Changed("disable") {
		s.Disable = a.disable
	}
	if a.verbose {
		s.LogLevel = "debug"
	}
	a.settings = s

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) env(key string) (string, bool) {
	if a.lookupEnv == nil {
		return "", false
	}
	v, ok := a.lookupEnv(envPrefix + key)
	return v, ok && v != ""
}

// applyEnv overrides s with BLUEPRINT_* variables.
func (a *app) applyEnv(s *settings) error {
	if v, ok := a.env("PROJECT"); ok {
		s.Project = v
	}
	if v, ok := a.env("OUT"); ok {
		s.Out = v
	}
	if v, ok := a.env("WORKERS"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", envPrefix, err)
		}
		s.Workers = n
	}
	if v, ok := a.env("NAMESPACE"); ok {
		s.Namespace = v
	}
	if v, ok := a.env("TIMESTAMP"); ok {
		s.Timestamp = v
	}
	if v, ok := a.env("LOG_LEVEL"); ok {
		s.LogLevel = v
	}
	if v, ok := a.env("DISABLE"); ok {
		s.Disable = cast.ToStringSlice(strings.ReplaceAll(v, ",", " "))
	}
	return nil
}

// genConfig returns the generator configuration of the resolved settings,
// followed by extra.
func (a *app) genConfig(target string, extra ...gen.Option) (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithLogger(a.logger),
		gen.WithNamespace(a.settings.Namespace),
		gen.WithoutFeatures(a.settings.Disable...),
	}
	if a.settings.Workers > 0 {
		opts = append(opts, gen.WithWorkers(a.settings.Workers))
	}
	if a.settings.Timestamp != "" {
		ts, err := cast.ToTimeE(a.settings.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %w", a.settings.Timestamp, err)
		}
		opts = append(opts, gen.WithTimestamp(ts.UTC()))
	}
	if target != "" {
		opts = append(opts, gen.WithTarget(target))
	}
	return gen.NewConfig(append(opts, extra...)...)
}

// models opens the document at path and returns the models of the selected
// project: the --project one, else the active one, else every model.
// Relationships to undeclared models are logged.
func (a *app) models(path string) ([]*schema.Model, error) {
	st, err := store.Open(path, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	project := a.settings.Project
	if project == "" {
		if p := st.ActiveProject(); p != nil {
			project = p.ID
		}
	}
	models := st.Models()
	if project != "" {
		if models, err = st.ProjectModels(project); err != nil {
			return nil, fmt.Errorf("select project in %s: %w", path, err)
		}
	}
	for _, r := range schema.Unresolved(models) {
		a.logger.Warn("unresolved relationship",
			"model", r.Owner.Name,
			"type", r.Edge.Kind,
			"related", r.Edge.RelatedModel,
		)
	}
	a.logger.Debug("schema loaded", "path", path, "project", project, "models", len(models))
	return models, nil
}

// output opens the named file, or returns stdout for an empty name.
func output(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(name)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
