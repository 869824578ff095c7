package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list       List posts, newest first")
	fmt.Fprintln(w, "  post       Parse one post file and print it as JSON")
	fmt.Fprintln(w, "  page       Print one listing page as JSON")
	fmt.Fprintln(w, "  pages      Print every listing page as JSON")
	fmt.Fprintln(w, "  feed       Write an Atom feed of the newest posts")
	fmt.Fprintln(w, "  css        Print the stylesheet for highlighted code")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'blog help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: blog)")
	fmt.Fprintln(w, "  -d, --dir <path>          Posts directory (default: posts)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printRenderUsage prints the Markdown rendering flags.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --lenient             Render code in unknown languages as plain text")
	fmt.Fprintln(w, "      --style <name>        Chroma style for highlighted code")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "list":
		fmt.Fprintln(w, "Usage: blog list [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List posts, newest first, as: date, URL, title.")
		fmt.Fprintln(w, "Only headers are read; bodies are not rendered.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "  -n, --limit <n>           Newest posts to list (0 = all)")
		fmt.Fprintln(w, "      --date-format <s>     Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
		fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
		fmt.Fprintln(w, "                            Use [text] to escape literals: [Posted] YYYY")
	case "post":
		fmt.Fprintln(w, "Usage: blog post <file> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Parse one post file and print it as JSON.")
		fmt.Fprintln(w, "The file name must look like YYYY-MM-DD-slug.md.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "  -o, --output <path>       Write JSON to file")
		fmt.Fprintln(w)
		printRenderUsage(w)
	case "page":
		fmt.Fprintln(w, "Usage: blog page [n] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print listing page n (default 1) as JSON.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --size <n>            Posts per page (default: entryCountOnePage)")
		fmt.Fprintln(w, "  -o, --output <path>       Write JSON to file")
		fmt.Fprintln(w)
		printRenderUsage(w)
	case "pages":
		fmt.Fprintln(w, "Usage: blog pages [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print every listing page as a JSON array.")
		fmt.Fprintln(w, "Pages are built in parallel; the first failure stops the run.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --size <n>            Posts per page (default: entryCountOnePage)")
		fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
		fmt.Fprintln(w, "  -o, --output <path>       Write JSON to file")
		fmt.Fprintln(w)
		printRenderUsage(w)
	case "feed":
		fmt.Fprintln(w, "Usage: blog feed [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Write an Atom feed of the newest posts.")
		fmt.Fprintln(w, "Requires site.url in the config or BLOG_SITE_URL.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "  -n, --limit <n>           Newest posts in the feed (default: feed.entries)")
		fmt.Fprintln(w, "  -o, --output <path>       Write Atom XML to file")
		fmt.Fprintln(w)
		printRenderUsage(w)
	case "css":
		fmt.Fprintln(w, "Usage: blog css [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the stylesheet for highlighted code blocks.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --style <name>        Chroma style (default: markdown.codeStyle)")
		fmt.Fprintln(w, "  -o, --output <path>       Write CSS to file")
	case "version":
		fmt.Fprintln(w, "Usage: blog version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
		return
	case "help":
		fmt.Fprintln(w, "Usage: blog help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
		return
	default:
		printUsage(w)
		return
	}
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	printCommandUsage(env.Stdout, args[0])
	return ExitSuccess
}
