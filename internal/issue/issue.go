// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	SourceStartFailedId
	NoEntriesFoundId
	NoMatchesFoundId
	LaunchFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the quiver configuration file.

## Configuration file locations:
- Linux: ~/.config/quiver/config.toml
- macOS: ~/Library/Application Support/quiver/config.toml
- Windows: %APPDATA%\quiver\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ quiver config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/quiver/config.toml
~~~

## Example configuration:
~~~toml
list_size = 15
terminal_runner = "x-terminal-emulator -e $COMMAND"
sources = ["desktop", "path"]

[ui]
verbose = false
~~~`,
	}

	sourceStartFailedIssue = &Issue{
		id: SourceStartFailedId,
		mdMsg: `
# An entry source failed to start!

One of the configured entry sources could not be started, so its
applications will be missing from the results.

## Common causes:
- A plugin script path in the config does not exist
- The plugin script has a syntax error
- A directory the source scans is unreadable

## Things you can try:
- Run with verbose mode to see which source failed and why:
~~~
$ quiver --verbose list
~~~

- Check the [[plugins]] paths in your config file
- Remove the misbehaving source from the 'sources' list`,
	}

	noEntriesFoundIssue = &Issue{
		id: NoEntriesFoundId,
		mdMsg: `
# No launchable entries found!

Every configured source finished without producing a single entry.

## Things you can try:
- Check which sources are enabled:
~~~
$ quiver config show
~~~

- Make sure at least one source is listed, e.g.:
~~~toml
sources = ["desktop", "path"]
~~~

- Verify that $PATH and $XDG_DATA_DIRS are set in your environment`,
	}

	noMatchesFoundIssue = &Issue{
		id: NoMatchesFoundId,
		mdMsg: `
# Nothing matched your search!

The catalog has entries, but none of them matched the query.

## Things you can try:
- Check for typos in the search text
- Search matches names and search terms, not descriptions
- List everything to see what is available:
~~~
$ quiver list
~~~`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the application!

The selected entry could not be executed.

## Common causes:
- The executable was removed after it was discovered
- Permission denied on the executable
- The terminal_runner template points at a missing terminal emulator

## Things you can try:
- Run the command manually in a shell to see the real error
- Check your terminal_runner setting:
~~~toml
terminal_runner = "x-terminal-emulator -e $COMMAND"
~~~

- Run with verbose mode for more details:
~~~
$ quiver --verbose run <name>
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		sourceStartFailedIssue.Id(): sourceStartFailedIssue,
		noEntriesFoundIssue.Id():    noEntriesFoundIssue,
		noMatchesFoundIssue.Id():    noMatchesFoundIssue,
		launchFailedIssue.Id():      launchFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
