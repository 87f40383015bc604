// Command generate_index renders README.md into the index.html of a release
// directory, replacing the Installation section with links to the archives
// found next to it.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	if err := run("README.md", os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(readmePath, distDir string) error {
	readme, err := os.ReadFile(readmePath) //nolint:gosec // build script input
	if err != nil {
		return fmt.Errorf("read readme: %w", err)
	}
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return fmt.Errorf("read dist: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	body := renderMarkdown(readme)
	body = replaceInstallSection(body, downloadsHTML(detectVersion(names), archives(names)))

	indexPath := filepath.Join(distDir, "index.html")
	f, err := os.Create(indexPath) //nolint:gosec // build script output
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if err := writePage(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
	return nil
}

func renderMarkdown(src []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return string(markdown.Render(p.Parse(src), r))
}

// Release archives are named tmenu_VERSION_OS_ARCH.ext.
var archiveRE = regexp.MustCompile(`^tmenu_(.+)_(Darwin|Linux|Windows)_(arm64|x86_64)\.(tar\.gz|zip)$`)

func detectVersion(names []string) string {
	for _, name := range names {
		if m := archiveRE.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return "unknown"
}

type archive struct {
	platform string
	file     string
}

var platformNames = map[string]string{
	"Darwin_arm64":   "macOS (Apple Silicon)",
	"Darwin_x86_64":  "macOS (Intel)",
	"Linux_arm64":    "Linux (ARM64)",
	"Linux_x86_64":   "Linux (x86_64)",
	"Windows_arm64":  "Windows (ARM64)",
	"Windows_x86_64": "Windows (x86_64)",
}

// archives returns one archive per platform, ordered by platform name.
func archives(names []string) []archive {
	seen := map[string]bool{}
	var out []archive
	for _, name := range names {
		m := archiveRE.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := m[2] + "_" + m[3]
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, archive{platform: platformNames[key], file: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].platform < out[j].platform })
	return out
}

func downloadsHTML(version string, list []archive) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"downloads\">\n  <h3>" + version + "</h3>\n  <table class=\"download-table\">\n")
	for _, a := range list {
		fmt.Fprintf(&sb, "    <tr><td class=\"platform-name\">%s</td><td><a href=\"%s\">download</a></td></tr>\n", a.platform, a.file)
	}
	sb.WriteString("  </table>\n</div>\n")
	return sb.String()
}

// replaceInstallSection swaps everything from the Installation heading up to
// the next h2 for the downloads table. The page is unchanged when either
// heading is missing.
func replaceInstallSection(page, downloads string) string {
	start := strings.Index(page, `<h2 id="installation">`)
	if start == -1 {
		start = strings.Index(page, `<h2 id="install">`)
	}
	if start == -1 {
		return page
	}
	rest := page[start+len(`<h2 id="`):]
	next := strings.Index(rest, `<h2 id="`)
	if next == -1 {
		return page
	}
	end := start + len(`<h2 id="`) + next

	return page[:start] + `<h2 id="installation">Installation</h2>

` + downloads + `
<p>Extract the archive and put the binary on your PATH:</p>
<pre><code>tar -xzf tmenu_*.tar.gz
sudo mv tmenu /usr/local/bin/
</code></pre>

` + page[end:]
}

func writePage(w io.Writer, body string) error {
	_, err := fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>tmenu - dynamic menu for the terminal</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 860px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #222; }
    h1 { border-bottom: 2px solid #005577; padding-bottom: 8px; }
    code { background: #eef2f5; padding: 2px 5px; border-radius: 3px; font-family: Menlo, monospace; }
    pre { background: #1d2430; color: #e2e8f0; padding: 14px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .downloads { background: #eef6fa; padding: 16px; border-left: 4px solid #005577; }
    .platform-name { font-weight: 500; width: 220px; }
  </style>
</head>
<body>
%s</body>
</html>
`, body)
	return err
}
