package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jw-y/pklgen/internal/generator"
)

var (
	inPath     string
	outDir     string
	indent     string
	configPath string
	jsonLog    bool
)

// RootCmd generates Python sources from a reflected Pkl module description.
var RootCmd = &cobra.Command{
	Use:   "pklgen",
	Short: "Generate Python dataclasses from a reflected Pkl module description",
	Long: `Pklgen turns a reflected Pkl module description into Python source:
one <Module>_pkl.py file per module, containing dataclasses for the module's
classes, enums, and type aliases plus a load_pkl convenience loader.

The input is the JSON module description emitted by the evaluator's
reflection facility; target identifiers (including renames) are resolved
before it reaches pklgen.

Examples:
  pklgen -i reflected.json                  # Write documents to stdout
  pklgen -i reflected.json -o gen/          # Write <Module>_pkl.py files
  pklgen check -i reflected.json -o gen/    # Verify committed files are current`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

// CheckCmd verifies that previously generated files match the current input.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that generated Python files are up to date",
	Long: `Regenerate all documents in memory and compare them with the files in the
output directory. Exits non-zero when any file is missing or differs, for use
as a CI guard.`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&inPath, "in", "i", "", "Reflected module description to read (\"-\" for stdin)")
	RootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory (default: stdout)")
	RootCmd.PersistentFlags().StringVar(&indent, "indent", "", "Indentation unit for generated Python (default: four spaces)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: pklgen.yaml if present)")
	RootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Emit JSON structured logs")
	RootCmd.Version = deriveVersion()
	RootCmd.AddCommand(CheckCmd)
}

func Execute() error {
	return RootCmd.Execute()
}

// settings mirrors the optional pklgen.yaml file; flags override file values.
type settings struct {
	Input  string `yaml:"input"`
	Out    string `yaml:"out"`
	Indent string `yaml:"indent"`
}

const defaultSettingsFile = "pklgen.yaml"

func loadSettings(path string) (settings, error) {
	var s settings
	if path == "" {
		if _, err := os.Stat(defaultSettingsFile); err != nil {
			return s, nil
		}
		path = defaultSettingsFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "reading settings file %s", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "parsing settings file %s", path)
	}
	return s, nil
}

// resolveConfig merges the settings file with flag values; flags win.
func resolveConfig() (generator.Config, string, error) {
	s, err := loadSettings(configPath)
	if err != nil {
		return generator.Config{}, "", err
	}
	cfg := generator.Config{Input: s.Input, Indent: s.Indent}
	dir := s.Out
	if inPath != "" {
		cfg.Input = inPath
	}
	if indent != "" {
		cfg.Indent = indent
	}
	if outDir != "" {
		dir = outDir
	}
	if cfg.Input == "" {
		return generator.Config{}, "", errors.New("no input: pass -i or set input in the settings file")
	}
	return cfg, dir, nil
}

func newLogger() (*zap.SugaredLogger, error) {
	var l *zap.Logger
	var err error
	if jsonLog {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, dir, err := resolveConfig()
	if err != nil {
		return err
	}
	results, err := generator.Run(cfg)
	if err != nil {
		return err
	}
	for _, res := range results {
		if dir == "" {
			fmt.Println(res.Document)
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		outPath := filepath.Join(dir, res.FileName)
		if err := os.WriteFile(outPath, []byte(res.Document), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
		log.Infow("generated", "namespace", res.Namespace, "path", outPath)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, dir, err := resolveConfig()
	if err != nil {
		return err
	}
	if dir == "" {
		return errors.New("check needs an output directory: pass -o or set out in the settings file")
	}
	results, err := generator.Run(cfg)
	if err != nil {
		return err
	}
	var stale []string
	for _, res := range results {
		existing, err := os.ReadFile(filepath.Join(dir, res.FileName))
		if err != nil || string(existing) != res.Document {
			stale = append(stale, res.FileName)
		}
	}
	if len(stale) == 0 {
		log.Infow("generated files are up to date", "count", len(results))
		return nil
	}
	for _, name := range stale {
		log.Warnw("out of date", "file", name)
	}
	return errors.Newf("%d generated file(s) out of date - rerun pklgen", len(stale))
}

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		var revision string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				revision = s.Value
				break
			}
		}
		if len(revision) >= 12 { // short hash for readability
			return revision[:12]
		}
		if revision != "" {
			return revision
		}
	}
	return "devel"
}
