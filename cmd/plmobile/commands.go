// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"sync"
	"text/tabwriter"

	"plmobile-server/binding"
	"plmobile-server/crypto"
	"plmobile-server/recognizer"

	"gopkg.in/yaml.v3"
)

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) recognize(ctx context.Context, numbers []string) error {
	if len(numbers) == 0 {
		return fmt.Errorf("recognize: at least one number is required")
	}
	results, err := a.classifier.RecognizeBatch(ctx, numbers)
	if err != nil {
		return err
	}
	if a.jsonOut {
		return a.writeJSON(results)
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if !r.Success {
			fmt.Fprintf(tw, "%s\t✗\t%s\n", r.PhoneNumber, r.Message)
			continue
		}
		line := fmt.Sprintf("%s\t✓\t%s", r.Normalized, r.Message)
		if r.DetailedOperator != "" {
			line += "\t" + r.DetailedOperator
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func (a *app) validate(numbers []string) error {
	if len(numbers) == 0 {
		return fmt.Errorf("validate: at least one number is required")
	}
	invalid := false
	results := make([]recognizer.ValidationResult, 0, len(numbers))
	for _, n := range numbers {
		v := a.rec.Validate(n)
		invalid = invalid || !v.Valid
		results = append(results, v)
	}
	if a.jsonOut {
		if err := a.writeJSON(results); err != nil {
			return err
		}
	} else {
		for i, v := range results {
			fmt.Fprintf(a.stdout, "%s: %s\n", numbers[i], v.Message)
		}
	}
	if invalid {
		return errInvalid
	}
	return nil
}

func (a *app) normalize(numbers []string) error {
	for _, n := range numbers {
		fmt.Fprintln(a.stdout, recognizer.Normalize(n))
	}
	return nil
}

func (a *app) format(args []string) error {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	style := fs.String("style", string(recognizer.Standard), "standard, spaced or international")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s := recognizer.ParseStyle(*style)
	for _, n := range fs.Args() {
		fmt.Fprintln(a.stdout, a.rec.Format(n, s))
	}
	return nil
}

// batch reads one number per line. Blank lines are skipped.
func (a *app) batch(ctx context.Context) error {
	var numbers []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			numbers = append(numbers, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	results, err := a.classifier.RecognizeBatch(ctx, numbers)
	if err != nil {
		return err
	}
	if results == nil {
		results = []recognizer.RecognitionResult{}
	}
	return a.writeJSON(results)
}

func (a *app) prefixes(args []string) error {
	fs := flag.NewFlagSet("prefixes", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	detailed := fs.Bool("detailed", false, "list the detailed prefix database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *detailed {
		if a.db == nil {
			return fmt.Errorf("no detailed prefix database loaded, use -db or PREFIX_DB_PATH")
		}
		entries := a.db.Entries()
		if a.jsonOut {
			return a.writeJSON(entries)
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Prefix, e.Operator)
		}
		return tw.Flush()
	}

	table := a.rec.Table()
	if a.jsonOut {
		return a.writeJSON(map[string]any{
			"table":    table.Name(),
			"prefixes": table.ValidPrefixes(),
			"m2m":      table.M2MPrefixes(),
		})
	}
	fmt.Fprintln(a.stdout, strings.Join(table.ValidPrefixes(), ", "))
	return nil
}

func (a *app) operators(args []string) error {
	fs := flag.NewFlagSet("operators", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asYAML := fs.Bool("yaml", false, "print the table as a YAML table file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table := a.rec.Table()
	switch {
	case *asYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(table.Config()); err != nil {
			return err
		}
		return enc.Close()
	case a.jsonOut:
		return a.writeJSON(table.Operators())
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, op := range table.Operators() {
		fmt.Fprintf(tw, "%s\t%s\n", op.Operator, strings.Join(op.Prefixes, ", "))
	}
	if m2m := table.M2MPrefixes(); len(m2m) > 0 {
		fmt.Fprintf(tw, "M2M\t%s\n", strings.Join(m2m, ", "))
	}
	return tw.Flush()
}

// watch feeds each stdin line to a bound input as a keystroke burst. A blank
// line blurs the input. End of input blurs once more and detaches.
func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	debounce := fs.Duration("debounce", binding.DefaultDebounce, "validation delay after each input")
	formatOnBlur := fs.Bool("format-on-blur", false, "format valid numbers on blur")
	style := fs.String("style", string(recognizer.Spaced), "format style used on blur")
	hideOperator := fs.Bool("hide-operator", false, "do not show the operator")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var mu sync.Mutex
	show := func(fb binding.Feedback) {
		mu.Lock()
		defer mu.Unlock()
		if a.jsonOut {
			_ = json.NewEncoder(a.stdout).Encode(map[string]any{
				"value":   fb.Value,
				"state":   fb.State,
				"display": fb.Display,
				"result":  fb.Result,
			})
			return
		}
		fmt.Fprintf(a.stdout, "%s\t%s\n", fb.Value, fb.Display)
	}

	registry := binding.NewRegistry(a.classifier, binding.Config{Debounce: *debounce})
	defer registry.Close()
	h := registry.Attach(binding.Options{
		FormatOnBlur:     *formatOnBlur,
		Format:           recognizer.ParseStyle(*style),
		HideOperatorInfo: *hideOperator,
		OnValidate:       show,
	})

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(a.stdin)
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				h.Blur(ctx)
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				h.Blur(ctx)
				continue
			}
			h.Input(line)
		}
	}
}

// hashKey prints an argon2id hash for key, generating a key when none is
// given.
func (a *app) hashKey(args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	} else {
		generated, err := crypto.GenerateRandomString("ak_", 32, "hex")
		if err != nil {
			return err
		}
		key = generated
	}

	hash, err := crypto.NewCrypto().HashAPIKey(key)
	if err != nil {
		return err
	}
	if a.jsonOut {
		return a.writeJSON(map[string]string{"api_key": key, "api_key_hash": hash})
	}
	fmt.Fprintf(a.stdout, "API key:      %s\nAPI_KEY_HASH: %s\n", key, hash)
	return nil
}
