package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/site"
)

// runRender converts a single Markdown file, or stdin for "-", and prints
// the body HTML or, with --title, the page title.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageError(err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one file (use - for stdin)", ErrUsage)
	}

	engine := flags.engine
	if engine == "" {
		engine = config.EngineNative
	}
	if !slices.Contains(config.Engines, engine) {
		return fmt.Errorf("%w: engine: %q%s", config.ErrInvalidValue, engine, hints.ForEngine(config.Engines))
	}

	content, err := readInput(positional[0], env.Stdin)
	if err != nil {
		return err
	}

	var fm site.FrontMatter
	if flags.frontMatter {
		fm, content, err = site.ParseFrontMatter(content)
		if err != nil {
			return err
		}
	}
	markdown := string(content)

	if flags.title {
		title := fm.Title
		if title == "" {
			title, err = mdsite.ExtractTitle(markdown)
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(env.Stdout, title)
		return nil
	}

	body, err := newConverter(engine, false).ToHTML(ctx, markdown)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, body)
	return nil
}

// readInput reads a Markdown file, or r when path is "-".
func readInput(path string, r io.Reader) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(r)
	} else {
		content, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return content, nil
}
