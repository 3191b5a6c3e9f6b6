// Command kanacheck reports characters typed in the wrong Japanese
// script and can apply the suggested fixes.
//
// Usage:
//
//	echo "コー匕ー" | kanacheck
//	kanacheck --strict --allow recommend --allow ライ千 doc.md
//	kanacheck --format json doc.md
//	kanacheck --write doc.md
//	kanacheck allowlist
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alfex4936/kanacheck/internal/config"
	"github.com/Alfex4936/kanacheck/internal/fileio"
	"github.com/Alfex4936/kanacheck/internal/util"
	"github.com/Alfex4936/kanacheck/kanacheck"
)

// errFindings makes the process exit 1 without printing an error.
var errFindings = errors.New("findings reported")

type checkFlags struct {
	allow      []string
	allowFile  string
	allowURL   string
	strict     bool
	format     string
	fix        bool
	write      bool
	configPath string
	logLevel   string
	timeout    time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "kanacheck:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &checkFlags{}
	rootCmd := &cobra.Command{
		Use:           "kanacheck [files...]",
		Short:         "Find kanji/hiragana/katakana typed in place of a look-alike",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f, args)
		},
	}

	addOptionFlags(rootCmd, f)
	rootCmd.Flags().StringVar(&f.format, "format", "text", "output format: text | json")
	rootCmd.Flags().BoolVar(&f.fix, "fix", false, "print the corrected text instead of findings")
	rootCmd.Flags().BoolVarP(&f.write, "write", "w", false, "rewrite files in place with every fix applied")

	rootCmd.AddCommand(newAllowlistCmd())
	return rootCmd
}

func addOptionFlags(cmd *cobra.Command, f *checkFlags) {
	cmd.Flags().StringArrayVar(&f.allow, "allow", nil, `allow-list entry ("$num$" = 二/三/八, "recommend" keeps the built-in list)`)
	cmd.Flags().StringVar(&f.allowFile, "allow-file", "", "allow-list file (.json, .yaml, .toml or one entry per line)")
	cmd.Flags().StringVar(&f.allowURL, "allow-url", "", "download the allow list from this URL")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "also flag へ between katakana")
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultConfigPath(), "TOML config file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "log level: debug | info | warn | error")
	cmd.Flags().DurationVarP(&f.timeout, "timeout", "t", 10*time.Second, "overall timeout")
}

// options merges the config file, allow sources and flags. Flags given
// on the command line win over the file.
func options(ctx context.Context, cmd *cobra.Command, f *checkFlags, log zerolog.Logger) (kanacheck.Options, error) {
	fileCfg, err := config.LoadFile(f.configPath)
	if err != nil {
		return kanacheck.Options{}, err
	}
	check := fileCfg.Check
	applyBoolConfig(cmd, "strict", &f.strict, check.StrictMode)
	applyStringConfig(cmd, "allow-file", &f.allowFile, check.AllowFile)
	applyStringConfig(cmd, "allow-url", &f.allowURL, check.AllowURL)

	var list []string
	if cmd.Flags().Changed("allow") {
		list = append(list, f.allow...)
	} else {
		fromFile, err := check.AllowList()
		if err != nil {
			return kanacheck.Options{}, err
		}
		list = fromFile
	}

	if f.allowFile != "" {
		entries, err := kanacheck.LoadAllow(f.allowFile)
		if err != nil {
			return kanacheck.Options{}, err
		}
		log.Debug().Str("file", f.allowFile).Int("entries", len(entries)).Msg("allow list loaded")
		list = append(orEmpty(list), entries...)
	}
	if f.allowURL != "" {
		entries, err := kanacheck.FetchAllow(ctx, f.allowURL)
		if err != nil {
			return kanacheck.Options{}, err
		}
		log.Debug().Str("url", f.allowURL).Int("entries", len(entries)).Msg("allow list fetched")
		list = append(orEmpty(list), entries...)
	}

	return kanacheck.Options{Allow: list, StrictMode: f.strict}, nil
}

// orEmpty keeps "a list was given" distinct from "no list" (nil).
func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

type input struct {
	name    string
	text    string
	charset string
}

func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return decodeInput("<stdin>", data)
	}
	out := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		in, err := decodeInput(path, data)
		if err != nil {
			return nil, err
		}
		out = append(out, in...)
	}
	return out, nil
}

func decodeInput(name string, data []byte) ([]input, error) {
	text, cs, err := fileio.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return []input{{name: name, text: text, charset: cs}}, nil
}

func runCheck(cmd *cobra.Command, f *checkFlags, args []string) error {
	log := config.SetupLogger(cmd.ErrOrStderr(), f.logLevel, "")
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown format %q", f.format)
	}
	if f.write && len(args) == 0 {
		return errors.New("--write needs file arguments")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	opts, err := options(ctx, cmd, f, log)
	if err != nil {
		return err
	}
	engine := kanacheck.NewEngine(opts)

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, in := range inputs {
		res, err := engine.CheckDocument(ctx, in.text)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		total += res.FindingCount
		log.Debug().Str("input", in.name).Str("charset", in.charset).Int("findings", res.FindingCount).Msg("checked")

		switch {
		case f.write:
			if res.FindingCount == 0 {
				continue
			}
			if err := writeFile(in.name, res.Corrected, in.charset); err != nil {
				return err
			}
			log.Info().Str("file", in.name).Int("fixes", res.FindingCount).Msg("rewrote")
		case f.fix:
			if _, err := io.WriteString(out, res.Corrected); err != nil {
				return err
			}
		case f.format == "json":
			if err := util.EncodeNoEscape(out, struct {
				Name string `json:"name"`
				*kanacheck.Result
			}{in.name, res}, true); err != nil {
				return err
			}
		default:
			if err := printText(out, in.name, res); err != nil {
				return err
			}
		}
	}

	if total > 0 && !f.fix && !f.write {
		return errFindings
	}
	return nil
}

func printText(w io.Writer, name string, res *kanacheck.Result) error {
	for _, u := range res.Units {
		for _, fd := range u.Findings {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s (%s)\n", name, fd.Line, fd.Column, fd.Message, fd.Rule); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeFile rewrites path in the charset it was read as.
func writeFile(path, text, charset string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := fileio.Encode(text, charset)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

func newAllowlistCmd() *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "allowlist",
		Short: "Print the expanded allow list in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := config.SetupLogger(cmd.ErrOrStderr(), f.logLevel, "")
			ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
			defer cancel()

			opts, err := options(ctx, cmd, f, log)
			if err != nil {
				return err
			}
			for _, e := range kanacheck.NewEngine(opts).AllowEntries() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), e); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
	addOptionFlags(cmd, f)
	return cmd
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
