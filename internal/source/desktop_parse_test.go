// SPDX-License-Identifier: MPL-2.0

package source

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// readSections runs the whole input through a sectionReader and collects
// every emitted section, including the trailing flush.
func readSections(input string) []section {
	var reader sectionReader
	var sections []section
	for _, line := range strings.Split(input, "\n") {
		if sec, done := reader.push(line); done {
			sections = append(sections, sec)
		}
	}
	if sec, done := reader.finish(); done {
		sections = append(sections, sec)
	}
	return sections
}

func TestSectionReader_SplitsSections(t *testing.T) {
	t.Parallel()

	input := `
# top-of-file comment
[Desktop Entry]
Name=Files
Exec=nautilus %U

[Desktop Action new-window]
Name=New Window
Exec=nautilus --new-window
`
	sections := readSections(input)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].header != "Desktop Entry" {
		t.Errorf("first header = %q, want %q", sections[0].header, "Desktop Entry")
	}
	if sections[1].header != "Desktop Action new-window" {
		t.Errorf("second header = %q, want %q", sections[1].header, "Desktop Action new-window")
	}
	if name, ok := sections[1].name(""); !ok || name != "New Window" {
		t.Errorf("second section name = %q, %v", name, ok)
	}
}

func TestSectionReader_SkipsJunk(t *testing.T) {
	t.Parallel()

	input := `
[Desktop Entry]
# a comment between keys
this line has no equals sign
Name=Editor
`
	sections := readSections(input)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if got := len(sections[0].fields); got != 1 {
		t.Errorf("expected the junk line to be dropped, got %d fields", got)
	}
}

func TestSectionReader_KeysBeforeFirstHeader(t *testing.T) {
	t.Parallel()

	// Keys before any header accumulate into a headerless section that is
	// still emitted; callers decide whether they care.
	sections := readSections("Name=Orphan\n[Desktop Entry]\nName=Real\n")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].header != "" {
		t.Errorf("first header = %q, want empty", sections[0].header)
	}
}

func TestSection_SetField(t *testing.T) {
	t.Parallel()

	t.Run("duplicate keys keep the last value", func(t *testing.T) {
		t.Parallel()
		sections := readSections("[Desktop Entry]\nName=First\nName=Second\n")
		if name, _ := sections[0].name(""); name != "Second" {
			t.Errorf("name = %q, want %q", name, "Second")
		}
	})

	t.Run("localized keys become attributes", func(t *testing.T) {
		t.Parallel()
		sections := readSections("[Desktop Entry]\nName=Files\nName[pt_BR]=Arquivos\nName[de]=Dateien\n")
		sec := sections[0]

		cases := []struct {
			lang string
			want string
		}{
			{lang: "pt_BR", want: "Arquivos"},
			{lang: "de", want: "Dateien"},
			{lang: "fr", want: "Files"},
			{lang: "", want: "Files"},
		}
		for _, tc := range cases {
			if got, ok := sec.name(tc.lang); !ok || got != tc.want {
				t.Errorf("name(%q) = %q, %v; want %q", tc.lang, got, ok, tc.want)
			}
		}
	})

	t.Run("localized value without default", func(t *testing.T) {
		t.Parallel()
		sections := readSections("[Desktop Entry]\nName[de]=Dateien\n")
		sec := sections[0]
		if got, ok := sec.name("de"); !ok || got != "Dateien" {
			t.Errorf("name(de) = %q, %v; want Dateien", got, ok)
		}
		if _, ok := sec.name("fr"); ok {
			t.Error("name(fr) should fail without a default Name")
		}
		if _, ok := sec.name(""); ok {
			t.Error("name(\"\") should fail without a default Name")
		}
	})

	t.Run("whitespace around key and value is trimmed", func(t *testing.T) {
		t.Parallel()
		sections := readSections("[Desktop Entry]\n  Name = Editor  \n")
		if name, _ := sections[0].name(""); name != "Editor" {
			t.Errorf("name = %q, want %q", name, "Editor")
		}
	})
}

func TestSection_BoolFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		input      string
		wantTerm   bool
		wantHidden bool
	}{
		{
			name:     "terminal true",
			input:    "[Desktop Entry]\nTerminal=true\n",
			wantTerm: true,
		},
		{
			name:     "terminal capitalized",
			input:    "[Desktop Entry]\nTerminal=True\n",
			wantTerm: true,
		},
		{
			name:  "terminal false",
			input: "[Desktop Entry]\nTerminal=false\n",
		},
		{
			name:  "terminal absent",
			input: "[Desktop Entry]\nName=x\n",
		},
		{
			name:       "hidden",
			input:      "[Desktop Entry]\nHidden=true\n",
			wantHidden: true,
		},
		{
			name:       "no display",
			input:      "[Desktop Entry]\nNoDisplay=true\n",
			wantHidden: true,
		},
		{
			name:  "visible",
			input: "[Desktop Entry]\nHidden=false\nNoDisplay=false\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sec := readSections(tc.input)[0]
			if got := sec.terminal(); got != tc.wantTerm {
				t.Errorf("terminal() = %v, want %v", got, tc.wantTerm)
			}
			if got := sec.hidden(); got != tc.wantHidden {
				t.Errorf("hidden() = %v, want %v", got, tc.wantHidden)
			}
		})
	}
}

func TestSection_Command(t *testing.T) {
	t.Parallel()

	t.Run("TryExec wins over Exec", func(t *testing.T) {
		t.Parallel()
		sec := readSections("[Desktop Entry]\nExec=flatpak run org.gnome.Files\nTryExec=nautilus\n")[0]
		if cmd, ok := sec.command(); !ok || cmd != "nautilus" {
			t.Errorf("command() = %q, %v; want nautilus", cmd, ok)
		}
	})

	t.Run("Exec as fallback", func(t *testing.T) {
		t.Parallel()
		sec := readSections("[Desktop Entry]\nExec=nautilus %U\n")[0]
		if cmd, ok := sec.command(); !ok || cmd != "nautilus %U" {
			t.Errorf("command() = %q, %v; want 'nautilus %%U'", cmd, ok)
		}
	})

	t.Run("neither", func(t *testing.T) {
		t.Parallel()
		sec := readSections("[Desktop Entry]\nName=x\n")[0]
		if _, ok := sec.command(); ok {
			t.Error("command() should fail without Exec or TryExec")
		}
	})
}

func TestStripFieldCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "drops placeholders",
			in:   []string{"nautilus", "--new-window", "%U"},
			want: []string{"nautilus", "--new-window"},
		},
		{
			name: "unescapes literal percent",
			in:   []string{"disp", "%%"},
			want: []string{"disp", "%"},
		},
		{
			name: "keeps longer percent tokens",
			in:   []string{"convert", "%dir%"},
			want: []string{"convert", "%dir%"},
		},
		{
			name: "all placeholders",
			in:   []string{"%f", "%U"},
			want: []string{},
		},
		{
			name: "empty",
			in:   []string{},
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := stripFieldCodes(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("stripFieldCodes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
