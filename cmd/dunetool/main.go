// dunetool is a CLI utility for inspecting and exporting the dune scene
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/config"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/export"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "sample":
		cmdSample(args)
	case "scan":
		cmdScan(args)
	case "export":
		cmdExport(args)
	case "glsl":
		cmdGLSL()
	case "placements":
		cmdPlacements(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dunetool - dune scene utility

Usage:
  dunetool <command> [options]

Commands:
  sample <x> <z>                     Print elevation and normal at (x, z)
  scan [-size N] [-panel] <out>      Render the elevation scan (.png, .webp, .tga)
  export [-objects] <out.glb>        Write the static scene as binary glTF
  glsl                               Print the generated height function
  placements [-o out] [file]         Validate a placement table, or convert it
  config <out.yaml>                  Write the default configuration

Examples:
  dunetool sample 0 60
  dunetool scan -panel scan.webp
  dunetool export -objects room.glb
  dunetool placements -o room.toml room.yaml`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdSample(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dunetool sample <x> <z>")
		os.Exit(1)
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fail("x: %v", err)
	}
	z, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fail("z: %v", err)
	}

	field := heightfield.Default()
	n := field.Normal(x, z)
	fmt.Printf("elevation: %.4f\n", field.Elevation(x, z))
	fmt.Printf("normal:    (%.4f, %.4f, %.4f)\n", n.X(), n.Y(), n.Z())
	fmt.Printf("blend:     %.4f\n", field.Blend(math.Hypot(x, z)))
	lo, hi := field.Range()
	fmt.Printf("bounds:    [%.4f, %.4f]\n", lo, hi)
}

func cmdScan(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	size := fs.Int("size", 256, "Scan size in pixels")
	panel := fs.Bool("panel", false, "Frame the scan with a border and label")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dunetool scan [-size N] [-panel] <out.png|.webp|.tga>")
		os.Exit(1)
	}
	out := fs.Arg(0)

	p := export.DefaultScanParams()
	p.Size = *size
	img := export.ElevationScan(heightfield.Default(), p)

	var err error
	if *panel {
		err = export.WriteImage(out, export.Panel(img, p.Size, p.Label))
	} else {
		err = export.WriteImage(out, img)
	}
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %dx%d scan to %s\n", p.Size, p.Size, out)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	objects := fs.Bool("objects", false, "Include the watches at rest")
	placements := fs.String("placements", "", "Placement table (.yaml or .toml)")
	resolution := fs.Int("resolution", 0, "Terrain grid resolution")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dunetool export [-objects] [-placements file] <out.glb>")
		os.Exit(1)
	}

	table := assets.DefaultPlacements()
	if *placements != "" {
		var err error
		if table, err = assets.LoadPlacements(*placements); err != nil {
			fail("%v", err)
		}
	}
	p := scene.DefaultParams()
	if *resolution > 0 {
		p.TerrainResolution = *resolution
	}

	s := scene.Build(table, heightfield.Default(), p)
	if err := export.SaveGLB(fs.Arg(0), s, export.GLBOptions{Objects: *objects}); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %d triangles to %s\n", s.TriangleCount(), fs.Arg(0))
}

func cmdGLSL() {
	fmt.Print(heightfield.Default().GLSL())
}

func cmdPlacements(args []string) {
	fs := flag.NewFlagSet("placements", flag.ExitOnError)
	out := fs.String("o", "", "Write the table to this file (.yaml or .toml)")
	fs.Parse(args)

	table := assets.DefaultPlacements()
	if fs.NArg() > 0 {
		var err error
		if table, err = assets.LoadPlacements(fs.Arg(0)); err != nil {
			fail("%v", err)
		}
	}

	for _, p := range table {
		fmt.Printf("%-20s (%7.3f, %7.3f, %7.3f)  %s\n", p.ID, p.Position[0], p.Position[1], p.Position[2], p.Label)
	}

	if *out == "" {
		return
	}
	data, err := assets.Marshal(table, filepath.Ext(*out))
	if err != nil {
		fail("%v", err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %d placements to %s\n", len(table), *out)
}

func cmdConfig(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dunetool config <out.yaml>")
		os.Exit(1)
	}
	if err := config.Default().SaveTo(args[0]); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote default config to %s\n", args[0])
}
