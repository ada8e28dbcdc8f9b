package main

import (
	"fmt"

	"github.com/npillmayer/typeface"
	"github.com/npillmayer/typeface/ot"
	"github.com/npillmayer/typeface/registry"
	"github.com/pterm/pterm"
)

func printInfo(tf *typeface.Typeface) {
	data := [][]string{
		{"Property", "Value"},
		{"Type", tf.Type().String()},
		{"Family", tf.FamilyName()},
		{"Style", tf.StyleName()},
		{"Full name", tf.FullName()},
		{"PostScript name", tf.PostScriptName()},
		{"Fingerprint", tf.Fingerprint().String()},
		{"Streams", fmt.Sprintf("%d", tf.NumStreams())},
		{"Bold / Italic", fmt.Sprintf("%v / %v", tf.Bold(), tf.Italic())},
		{"Embedding", permission(tf.CanEmbed())},
		{"Subsetting", permission(tf.CanSubset())},
	}
	if tf.Type().IsSFNT() {
		data = append(data,
			[]string{"Weight class", fmt.Sprintf("%d", tf.WeightClass())},
			[]string{"Width class", fmt.Sprintf("%d", tf.WidthClass())},
			[]string{"Italic angle", fmt.Sprintf("%.2f", tf.ItalicAngle())},
			[]string{"PANOSE", fmt.Sprintf("% x", tf.Panose())},
		)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func permission(allowed bool) string {
	if allowed {
		return pterm.FgGreen.Sprint("allowed")
	}
	return pterm.FgRed.Sprint("not allowed")
}

func printMetrics(tf *typeface.Typeface) {
	m := tf.Metrics()
	data := [][]string{
		{"Metric", "Font units"},
		{"Units per em", fmt.Sprintf("%d", m.UnitsPerEm)},
		{"Bounding box", fmt.Sprintf("[%d %d %d %d]", m.BBox.XMin, m.BBox.YMin, m.BBox.XMax, m.BBox.YMax)},
		{"Ascent", fmt.Sprintf("%d", m.Ascent)},
		{"Descent", fmt.Sprintf("%d", m.Descent)},
		{"Baseline distance", fmt.Sprintf("%d", m.BaselineDistance)},
		{"Max width", fmt.Sprintf("%d", m.MaxWidth)},
		{"Avg width", fmt.Sprintf("%d", m.AvgWidth)},
		{"Missing width", fmt.Sprintf("%d", m.MissingWidth)},
		{"Cap height", fmt.Sprintf("%d", m.CapHeight)},
		{"x-height", fmt.Sprintf("%d", m.XHeight)},
		{"Fixed width", fmt.Sprintf("%v", m.FixedWidth)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTables(otf *ot.Font) {
	data := [][]string{
		{"Tag", "Size"},
	}
	for _, tag := range otf.TableTags() {
		size := len(otf.Table(tag).Binary())
		data = append(data, []string{tag.String(), fmt.Sprintf("%d", size)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printGlyphs(tf *typeface.Typeface, chars string) error {
	data := [][]string{
		{"Char", "Code-point", "Glyph", "Advance"},
	}
	for _, r := range chars {
		gid, err := tf.CodepointToGlyph(r)
		if err != nil {
			return err
		}
		adv, err := tf.GlyphAdvance(gid)
		if err != nil {
			return err
		}
		data = append(data, []string{
			string(r),
			fmt.Sprintf("U+%04X", r),
			fmt.Sprintf("%d", gid),
			fmt.Sprintf("%d", adv),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func printFontList(r *registry.Registry) {
	names := r.Names()
	if len(names) == 0 {
		pterm.Info.Println("no fonts loaded")
		return
	}
	data := [][]string{
		{"Name", "Font", "Type", "Fingerprint"},
	}
	for _, name := range names {
		tf, _ := r.LookupName(name)
		data = append(data, []string{name, tf.FullName(), tf.Type().String(), tf.Fingerprint().String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	r.LogTypefaces()
}
