package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/catalog"
	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/export"
	"github.com/san-kum/brim/internal/store"
	"github.com/san-kum/brim/internal/tui"
	"github.com/san-kum/brim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	outFile    string
	verbose    bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "brim",
		Short:         "compose bicycle-rider multibody models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "model description file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a preset model description")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every lifecycle phase")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "build a model and store its system and symbol table",
		RunE:  buildModel,
	}

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print the symbol descriptions and system of a model",
		RunE:  describeModel,
	}
	describeCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme, "color theme ("+strings.Join(viz.ListThemes(), ", ")+")")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export a built model as json",
		RunE:  exportModel,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "draw the component tree of a model as svg",
		RunE:  graphModel,
	}
	graphCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored builds",
		RunE:  listBuilds,
	}

	showCmd := &cobra.Command{
		Use:   "show [build_id]",
		Short: "show the symbol table of a stored build",
		Args:  cobra.ExactArgs(1),
		RunE:  showBuild,
	}
	showCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme, "color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset model descriptions",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a model description file from a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse the components and symbols of a model interactively",
		RunE:  browseModel,
	}
	browseCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme, "color theme")

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "list component kinds, formulations, load groups and mixins",
		RunE:  listKinds,
	}

	rootCmd.AddCommand(buildCmd, describeCmd, exportCmd, graphCmd, listCmd, showCmd, browseCmd, presetsCmd, initCmd, kindsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	switch {
	case configFile != "" && preset != "":
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	case configFile != "":
		return config.Load(configFile)
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// define builds the configured model and runs every lifecycle phase.
func define() (*assembly.Assembly, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	observe := assembly.WithObserver(func(p core.Phase, component string) {
		logger.Debug("phase defined", "phase", p.String(), "component", component)
	})
	a, err := config.Build(cfg, catalog.NewRegistry(), observe)
	if err != nil {
		return nil, err
	}
	if err := a.DefineAll(); err != nil {
		return nil, err
	}
	logger.Debug("model defined", "model", a.Name())
	return a, nil
}

func buildModel(cmd *cobra.Command, args []string) error {
	a, err := define()
	if err != nil {
		return err
	}
	sys, err := a.System()
	if err != nil {
		return err
	}
	if err := sys.Validate(); err != nil {
		logger.Warn("system is incomplete", "err", err)
	}
	entries, err := a.Descriptions()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(a.Name(), preset, entries, sys)
	if err != nil {
		return err
	}
	logger.Info("model stored", "id", id, "symbols", len(entries), "bodies", len(sys.Bodies()))
	fmt.Println(id)
	return nil
}

func describeModel(cmd *cobra.Command, args []string) error {
	th, err := viz.GetTheme(theme)
	if err != nil {
		return err
	}
	a, err := define()
	if err != nil {
		return err
	}
	sys, err := a.System()
	if err != nil {
		return err
	}
	entries, err := a.Descriptions()
	if err != nil {
		return err
	}

	styles := viz.NewStyles(th)
	fmt.Println(viz.SystemSummary(a.Name(), sys.Summary(), styles))
	fmt.Println(styles.Separator(60))
	fmt.Println(viz.DescriptionTable(entries, styles))
	return nil
}

func exportModel(cmd *cobra.Command, args []string) error {
	a, err := define()
	if err != nil {
		return err
	}
	sys, err := a.System()
	if err != nil {
		return err
	}
	entries, err := a.Descriptions()
	if err != nil {
		return err
	}

	if outFile == "" {
		return store.ExportJSON(os.Stdout, a.Name(), entries, sys)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := store.ExportJSON(f, a.Name(), entries, sys); err != nil {
		return err
	}
	logger.Info("exported", "path", outFile)
	return nil
}

func browseModel(cmd *cobra.Command, args []string) error {
	th, err := viz.GetTheme(theme)
	if err != nil {
		return err
	}
	a, err := define()
	if err != nil {
		return err
	}
	return tui.Run(a, th)
}

func graphModel(cmd *cobra.Command, args []string) error {
	a, err := define()
	if err != nil {
		return err
	}
	svg, err := export.ComponentTreeSVG(a)
	if err != nil {
		return err
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote component tree", "path", outFile)
	return nil
}

func listBuilds(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	builds, err := st.List()
	if err != nil {
		return err
	}

	if len(builds) == 0 {
		fmt.Println("no builds found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tPRESET\tTIME\tSYMBOLS\tBODIES\tCOORDS")

	for _, b := range builds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			b.ID,
			b.Model,
			b.Preset,
			b.Timestamp.Format("2006-01-02 15:04:05"),
			b.Symbols,
			len(b.System.Bodies),
			len(b.System.Coordinates),
		)
	}

	return w.Flush()
}

func showBuild(cmd *cobra.Command, args []string) error {
	th, err := viz.GetTheme(theme)
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	styles := viz.NewStyles(th)
	fmt.Println(viz.SystemSummary(meta.Model, meta.System, styles))

	rows, err := st.LoadDescriptions(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tDYNAMIC\tOWNER\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", r.Symbol, r.Dynamic, r.Owner, r.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("wrote model description", "path", args[0], "model", cfg.Name)
	return nil
}

func listKinds(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tFORMULATIONS\tSLOTS\tLOAD GROUPS")
	for _, k := range reg.ListKinds() {
		m, err := reg.GetComponent(k, catalog.Spec{Name: k})
		if err != nil {
			return err
		}
		var slots []string
		for _, r := range m.Core().Requirements() {
			slots = append(slots, r.Attribute()+"="+strings.Join(reg.Satisfying(r), "|"))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k,
			strings.Join(reg.Formulations(k), ", "),
			strings.Join(slots, " "),
			strings.Join(reg.LoadGroupsFor(m), ", "),
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LOAD GROUP\t")
	for _, k := range reg.ListLoadGroups() {
		fmt.Fprintf(w, "%s\t\n", k)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "MIXIN\t")
	for _, k := range reg.ListMixins() {
		fmt.Fprintf(w, "%s\t\n", k)
	}
	return w.Flush()
}
