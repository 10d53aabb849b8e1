package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskwm/internal/config"
)

const configUsage = `Usage:
  deskwm config validate [--path PATH]
  deskwm config print [--path PATH] [--defaults]
  deskwm config explain [--path PATH] <yaml.path>
`

func runConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, configUsage)
		return 2
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("config "+sub, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, configUsage) }
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")

	var err error
	switch sub {
	case "validate":
		if code := parseFlags(fs, rest); code >= 0 {
			return code
		}
		if _, err = loadConfig(*path); err == nil {
			fmt.Println("config: ok")
		}
	case "print":
		defaults := fs.Bool("defaults", false, "Print built-in defaults without reading files")
		if code := parseFlags(fs, rest); code >= 0 {
			return code
		}
		err = printConfig(*path, *defaults)
	case "explain":
		if code := parseFlags(fs, rest); code >= 0 {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "explain requires exactly one <yaml.path>")
			return 2
		}
		err = explainConfig(*path, fs.Arg(0))
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, configUsage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", sub)
		return 2
	}
	if err != nil {
		return fail(err)
	}
	return 0
}

func printConfig(path string, defaults bool) error {
	cfg := config.DefaultConfig()
	if !defaults {
		res, err := loadConfig(path)
		if err != nil {
			return err
		}
		cfg = res.Config
		for _, f := range res.Files {
			fmt.Printf("# file: %s\n", f)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func explainConfig(path, key string) error {
	res, err := loadConfig(path)
	if err != nil {
		return err
	}
	value, src, err := config.Explain(res, key)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Printf("path: %s\nsource: %s\nvalue:\n%s", key, formatSource(src), data)
	return nil
}

func formatSource(src config.Source) string {
	if src.Kind != config.SourceFile {
		if src.Name != "" && (src.Kind == config.SourceBuiltin || src.Kind == config.SourceDefault) {
			return string(src.Kind) + ":" + src.Name
		}
		return string(src.Kind)
	}
	switch {
	case src.File == "":
		return "file"
	case src.Line > 0:
		return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
	default:
		return "file:" + src.File
	}
}
