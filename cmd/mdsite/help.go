package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Generate the site (default)")
	fmt.Fprintln(w, "  render     Convert one markdown file to HTML")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsite help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite build [basepath] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every markdown file under the content directory to an HTML page,")
	fmt.Fprintln(w, "after copying the static directory into a freshly reset output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  basepath  URL prefix the site is served under (default \"/\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --content <dir>       Markdown source directory (default content)")
	fmt.Fprintln(w, "      --static <dir>        Static files directory (default static)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, reset on every build (default docs)")
	fmt.Fprintln(w, "      --template <file>     Page template with {{ Title }} and {{ Content }}")
	fmt.Fprintln(w, "      --assets <dir>        Overrides for templates/page.html and styles/default.css")
	fmt.Fprintln(w, "      --base-path <s>       Same as the basepath argument")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -e, --engine <s>          Engine: native, goldmark (default native)")
	fmt.Fprintln(w, "      --highlight           Syntax highlighting (goldmark only)")
	fmt.Fprintln(w, "      --front-matter        Read title and draft from YAML front matter")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --fail-fast           Stop at the first page failure")
	fmt.Fprintln(w, "      --check-links         Warn about links to missing pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSITE_CONFIG, MDSITE_BASE_PATH, MDSITE_CONTENT_DIR, MDSITE_STATIC_DIR,")
	fmt.Fprintln(w, "  MDSITE_OUTPUT_DIR, MDSITE_ASSETS_DIR, MDSITE_ENGINE, MDSITE_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite render <file.md|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one markdown file to HTML and print it. Use - to read stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -e, --engine <s>          Engine: native, goldmark (default native)")
	fmt.Fprintln(w, "      --title               Print the page title instead")
	fmt.Fprintln(w, "      --front-matter        Strip YAML front matter first")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
