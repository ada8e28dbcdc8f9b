package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "subset", "subsetting":
		pterm.Info.Println("Subsetting")
		pterm.Println(`
	subset:<characters>:<file> writes a TrueType font restricted to the glyphs
	for <characters> to <file>. Glyph numbers stay unchanged, glyphs not used
	are left empty. Composite glyphs pull in their components.

	Fonts may be subsetted only if their licensing bits allow it
	(see 'info') and if they have a format 4 Unicode character map.
	`)
	case "perm", "permissions", "fstype":
		pterm.Info.Println("Embedding Permissions")
		pterm.Println(`
	Permissions are derived from field fsType of table OS/2:
	+--------+------------------------+---------+----------+
	| Bit    | Meaning                | Embed   | Subset   |
	+--------+------------------------+---------+----------+
	| 0x0002 | restricted license     | no      |          |
	| 0x0004 | preview & print        | yes     |          |
	| 0x0008 | editable               | yes     |          |
	| 0x0100 | no subsetting          |         | no       |
	+--------+------------------------+---------+----------+
	If multiple bits are set, the least restrictive one wins.
	Type 1 fonts can be neither embedded nor subsetted.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load:<font>[:<afm>]       load a font file or system font
	fonts[:<name>]            list loaded fonts, or switch to font <name>
	info                      general information and permissions
	metrics                   font-wide metrics
	tables                    tables of TrueType and OpenType fonts
	glyph:<characters>        glyph indices and advance widths
	kern:<two characters>     kerning of a pair of characters
	subset:<characters>:<file>  write a subset of the font
	cff:<file>                write the CFF program of an OpenType font
	help[:subset|:perm]       this text, and more
	quit                      quit (or <ctrl>D)
	`)
	}
}
