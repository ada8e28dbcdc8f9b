package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/typeface"
	"github.com/npillmayer/typeface/ot"
	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded")

func (intp *Intp) checkFont() error {
	if intp.tf == nil {
		return errNoFont
	}
	return nil
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return errors.New("usage: load:<font>[:<afm>]"), false
	}
	return intp.loadFont(name, op.arg2), false
}

func fontsOp(intp *Intp, op *Op) (error, bool) {
	if name, ok := op.hasArg(); ok { // switch current font
		tf, found := intp.registry.LookupName(name)
		if !found {
			return fmt.Errorf("font %s not loaded", name), false
		}
		intp.tf = tf
		return nil, false
	}
	printFontList(intp.registry)
	return nil, false
}

func infoOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	printInfo(intp.tf)
	return
}

func metricsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	printMetrics(intp.tf)
	return
}

func tablesOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	if !intp.tf.Type().IsSFNT() {
		return fmt.Errorf("%s fonts have no tables", intp.tf.Type()), false
	}
	prg, err := intp.tf.FontProgram(0, 0)
	if err != nil {
		return
	}
	data, err := prg.Bytes()
	if err != nil {
		return
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return
	}
	printTables(otf)
	return
}

func glyphOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	if op.noArg() {
		return errors.New("usage: glyph:<characters>"), false
	}
	return printGlyphs(intp.tf, op.arg), false
}

func kernOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	pair := []rune(op.arg)
	if len(pair) != 2 {
		return errors.New("usage: kern:<two characters>"), false
	}
	var gids [2]ot.GlyphIndex
	for i, r := range pair {
		if gids[i], err = intp.tf.CodepointToGlyph(r); err != nil {
			return
		}
	}
	k, err := intp.tf.Kerning(gids[0], gids[1])
	if err != nil {
		return
	}
	pterm.Printf("kerning %q (%d) + %q (%d) = %d\n", pair[0], gids[0], pair[1], gids[1], k)
	return
}

func subsetOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	if op.noArg() || op.arg2 == "" {
		return errors.New("usage: subset:<characters>:<output file>"), false
	}
	if !intp.tf.CanSubset() {
		return fmt.Errorf("font %s cannot be subsetted", intp.tf.FullName()), false
	}
	subset, err := intp.tf.MakeSubset([]rune(op.arg), 0)
	if err != nil {
		return
	}
	return writeStream(subset, op.arg2), false
}

func cffOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	if op.noArg() {
		return errors.New("usage: cff:<output file>"), false
	}
	prg, err := intp.tf.FontProgram(0, typeface.ExtractCFF)
	if err != nil {
		return
	}
	return writeStream(prg, op.arg), false
}

type byteStream interface {
	Bytes() ([]byte, error)
}

func writeStream(s byteStream, path string) error {
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	pterm.Info.Printf("wrote %d bytes to %s\n", len(data), path)
	return nil
}
