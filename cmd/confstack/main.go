// Command confstack assembles a layered configuration and prints the result,
// giving operators a way to inspect what a service would see at startup.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"confstack"
)

type options struct {
	prefix     string
	profiles   []string
	variants   []string
	roots      []string
	properties []string
	format     string
	verbose    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "confstack [flags] [-- overrides...]",
		Short: "Assemble and print layered configuration",
		Long: `Assemble a configuration from layered resource files and print the
merged result. Positional arguments use the override grammar:

  confstack --prefix app --profile web --variant production -- web/port=7777
  confstack --prefix app -- --load extra.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "resource name prefix (required)")
	cmd.Flags().StringArrayVar(&opts.profiles, "profile", nil, "profile, repeatable, in order")
	cmd.Flags().StringArrayVar(&opts.variants, "variant", nil, "variant, repeatable, in order")
	cmd.Flags().StringArrayVar(&opts.roots, "root", nil, "resource root directory, repeatable")
	cmd.Flags().StringArrayVar(&opts.properties, "property", nil, "explicit property NAME=VALUE, repeatable")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "output format: yaml, toml, or json")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "trace assembly steps")
	cobra.CheckErr(cmd.MarkFlagRequired("prefix"))

	return cmd
}

func run(opts *options, args []string) error {
	logger := zap.NewNop()
	if opts.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer dev.Sync()
		logger = dev
	}

	properties := make(map[string]string, len(opts.properties))
	for _, p := range opts.properties {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid --property %q: expected NAME=VALUE", p)
		}
		properties[name] = value
	}

	roots := opts.roots
	if len(roots) == 0 {
		roots = confstack.DefaultRoots(opts.prefix)
	}

	cfg, err := confstack.Assemble(confstack.Options{
		Prefix:     opts.prefix,
		Profiles:   opts.profiles,
		Variants:   opts.variants,
		Resolver:   confstack.NewDirResolver(roots...),
		Args:       args,
		Properties: properties,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	out, err := render(cfg.Map(), opts.format)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func render(data map[string]any, format string) (string, error) {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to render YAML: %w", err)
		}
		return string(out), nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return "", fmt.Errorf("failed to render TOML: %w", err)
		}
		return buf.String(), nil
	case "json":
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render JSON: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
