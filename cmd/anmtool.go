// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	anm "github.com/saferwall-community/anmtool"
	alog "github.com/saferwall-community/anmtool/log"
)

var (
	wireVersion     int
	namemapPath     string
	varmapPath      string
	symbolsPath     string
	force           bool
	verbose         bool
	printOffsets    bool
	uniqueFilenames bool
)

func newBaseLogger() alog.Logger {
	min := alog.LevelInfo
	if verbose {
		min = alog.LevelDebug
	}
	return alog.NewFilter(alog.NewStdLogger(os.Stderr), alog.FilterLevel(min))
}

func newLogger() *alog.Helper {
	return alog.NewHelper(newBaseLogger())
}

// loadNames combines --namemap and --varmap into one NameMap. --symbols is
// a convenience flag naming a directory that holds both under their
// conventional names, for projects that keep the two side by side.
func loadNames(logger *alog.Helper) (*anm.NameMap, error) {
	if symbolsPath != "" {
		if namemapPath == "" {
			namemapPath = symbolsPath + "/anm_ins.txt"
		}
		if varmapPath == "" {
			varmapPath = symbolsPath + "/anm_var.txt"
		}
	}
	nm := anm.NewNameMap()
	if namemapPath != "" {
		f, err := os.Open(namemapPath)
		if err != nil {
			return nil, fmt.Errorf("opening namemap: %w", err)
		}
		defer f.Close()
		if err := nm.LoadOpcodeMap(f, logger); err != nil {
			return nil, fmt.Errorf("loading namemap: %w", err)
		}
	}
	if varmapPath != "" {
		f, err := os.Open(varmapPath)
		if err != nil {
			return nil, fmt.Errorf("opening varmap: %w", err)
		}
		defer f.Close()
		if err := nm.LoadVarMap(f, logger); err != nil {
			return nil, fmt.Errorf("loading varmap: %w", err)
		}
	}
	return nm, nil
}

func openArchive(path string) (*anm.Archive, error) {
	a, err := anm.OpenFile(path, &anm.Options{
		WireVersion:     wireVersion,
		Force:           force,
		PrintOffsets:    printOffsets,
		UniqueFilenames: uniqueFilenames,
		Logger:          newBaseLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := a.Parse(); err != nil {
		a.Close()
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return a, nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	nm, err := loadNames(newLogger())
	if err != nil {
		return err
	}
	text, err := anm.EmitText(a, &anm.TextOptions{
		Names:           nm,
		PrintOffsets:    printOffsets,
		UniqueFilenames: uniqueFilenames,
		ArchiveStem:     strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])),
	})
	if err != nil {
		return err
	}
	fmt.Print(text)
	for _, w := range a.Anomalies {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	entryName := args[1]
	outPath := args[2]
	for _, e := range a.Entries {
		if e.Name != entryName || e.Thtx == nil {
			continue
		}
		img, err := anm.DecodeTexture(e.Thtx, e.Data, wireVersion)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		return os.WriteFile(outPath, buf.Bytes(), 0o644)
	}
	return anm.ErrNoSuchEntryName
}

func runExtractMany(cmd *cobra.Command, args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	outDir := args[1]
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i, e := range a.Entries {
		if e.Thtx == nil {
			continue
		}
		img, err := anm.DecodeTexture(e.Thtx, e.Data, wireVersion)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		name := fmt.Sprintf("%s/entry%d.png", outDir, i)
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func runReplace(cmd *cobra.Command, args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	entryName, imgPath := args[1], args[2]
	source, err := os.ReadFile(imgPath)
	if err != nil {
		return err
	}
	found := false
	for _, e := range a.Entries {
		if e.Name != entryName {
			continue
		}
		found = true
		if err := ApplyDefaultsAndReplace(e, source, wireVersion); err != nil {
			return err
		}
	}
	if !found {
		return anm.ErrNoSuchEntryName
	}

	out, err := anm.Serialize(a)
	if err != nil {
		return err
	}
	return os.WriteFile(args[0], out, 0o644)
}

// ApplyDefaultsAndReplace decodes source into e's pixel format and resizes
// e's thtx/header dimensions that were left at their DefaultVal sentinel.
func ApplyDefaultsAndReplace(e *anm.Entry, source []byte, wireVersion int) error {
	if err := anm.ApplyDefaults(e, source); err != nil {
		return err
	}
	src, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return anm.ErrNotImage
	}
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	data, size, err := anm.EncodeTexture(img, e.Thtx.Format, wireVersion)
	if err != nil {
		return err
	}
	e.Data = data
	e.Thtx.Size = size
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	return fmt.Errorf("create: compiling a text-spec source into an archive is not implemented")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "anmtool",
		Short: "A compiler/decompiler for versioned ANM animation-script archives",
		Long:  "anmtool reads and writes ANM archives: sprite atlases, instruction scripts and packed texture payloads",
	}
	rootCmd.PersistentFlags().IntVar(&wireVersion, "version", 18, "wire/game version used to select opcode tables")
	rootCmd.PersistentFlags().StringVar(&namemapPath, "namemap", "", "opcode id -> mnemonic map file")
	rootCmd.PersistentFlags().StringVar(&varmapPath, "varmap", "", "register id -> variable name map file")
	rootCmd.PersistentFlags().StringVar(&symbolsPath, "symbols", "", "directory holding conventional namemap/varmap files")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "continue past unresolved symbol references")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
	rootCmd.PersistentFlags().BoolVar(&printOffsets, "print-offsets", false, "prefix instructions with their byte offsets")
	rootCmd.PersistentFlags().BoolVar(&uniqueFilenames, "unique-filenames", false, "synthesize unique per-entry filenames")

	listCmd := &cobra.Command{
		Use:   "list <archive.anm>",
		Short: "Print an archive's text-spec representation",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
	extractCmd := &cobra.Command{
		Use:   "extract <archive.anm> <entry-name> <out.png>",
		Short: "Extract a single entry's texture",
		Args:  cobra.ExactArgs(3),
		RunE:  runExtract,
	}
	extractManyCmd := &cobra.Command{
		Use:   "extract-many <archive.anm> <out-dir>",
		Short: "Extract every entry's texture into a directory",
		Args:  cobra.ExactArgs(2),
		RunE:  runExtractMany,
	}
	replaceCmd := &cobra.Command{
		Use:   "replace <archive.anm> <entry-name> <image>",
		Short: "Replace an entry's texture payload in place, deriving defaulted dimensions",
		Args:  cobra.ExactArgs(3),
		RunE:  runReplace,
	}
	createCmd := &cobra.Command{
		Use:   "create <spec-file> <archive.anm>",
		Short: "Compile a text-spec source file into an archive (unimplemented)",
		Args:  cobra.ExactArgs(2),
		RunE:  runCreate,
	}

	rootCmd.AddCommand(listCmd, extractCmd, extractManyCmd, replaceCmd, createCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
