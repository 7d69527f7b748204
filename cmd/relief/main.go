// Command relief converts an image into a 3-D-printable relief solid.
// It writes a normalized 16-bit heightmap preview, a raw millimeter dump,
// and a watertight STL next to the input file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"

	"github.com/lithogo/relief"
	"github.com/lithogo/relief/dem"
	"github.com/lithogo/relief/export"
	"github.com/lithogo/relief/heightmap"
	"github.com/lithogo/relief/imgio"
)

func realMain() error {
	in := flag.String("in", "", "input image file (jpg/png/webp/tiff)")
	demPath := flag.String("dem", "", "read a GeoTIFF heightfield instead of an image")
	x := flag.Uint("x", 0, "dem window x coordinate (default 0)")
	y := flag.Uint("y", 0, "dem window y coordinate (default 0)")
	w := flag.Uint("w", 0, "dem window width (default max)")
	h := flag.Uint("h", 0, "dem window height (default max)")
	zero := flag.Float64("zero", 10, "dem: translate the model down so that this is the lowest height")
	vscale := flag.Float64("scale", 1, "dem: scale vertically (default 1)")
	diff := flag.String("diff", "", "dem: a second file to compare against")

	widthMM := flag.Float64("width-mm", 100, "physical width in mm")
	px := flag.Int("px", 600, "output width in pixels")
	baseMM := flag.Float64("base-mm", 0.8, "base thickness in mm")
	reliefMM := flag.Float64("relief-mm", 1.5, "relief height in mm")
	black := flag.Float64("black", 0.02, "black cut")
	white := flag.Float64("white", 0.98, "white cut")
	tone := flag.Float64("tone", 1.15, "tone gamma (1.0 = linear)")
	invert := flag.Bool("invert", true, "bright=thin, for backlit transmission; -invert=false makes bright=thick")
	flipX := flag.Bool("flip-x", false, "mirror left-right")
	flipY := flag.Bool("flip-y", false, "mirror top-bottom")
	rot180 := flag.Bool("rot180", false, "rotate 180 deg (same as -flip-x -flip-y)")
	out := flag.String("out", "", "output basename without extension (default <input stem>_W<width-mm>mm, beside the input)")
	noSTL := flag.Bool("no-stl", false, "do not export STL (still exports PNG16 + raw dump)")
	validate := flag.Bool("validate", false, "weld and validate the mesh before writing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s [OPTIONS]:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		return fmt.Errorf("unrecognised arguments %s", strings.Join(flag.Args(), ", "))
	}
	if (*in == "") == (*demPath == "") {
		flag.Usage()
		return fmt.Errorf("exactly one of -in or -dem is required")
	}

	var (
		field *relief.Field
		pxMM  float64
		err   error
	)
	input := *in
	if *demPath != "" {
		input = *demPath
		field, pxMM, err = buildFromDEM(*demPath, *diff, *x, *y, *w, *h,
			*zero, *vscale, *widthMM, *flipX, *flipY, *rot180)
	} else {
		field, pxMM, err = buildFromImage(*in, *px, relief.Options{
			WidthMM:   *widthMM,
			BaseMM:    *baseMM,
			ReliefMM:  *reliefMM,
			BlackCut:  *black,
			WhiteCut:  *white,
			ToneGamma: *tone,
			Invert:    *invert,
			FlipX:     *flipX,
			FlipY:     *flipY,
			Rot180:    *rot180,
		})
	}
	if err != nil {
		return err
	}

	base := outBase(input, *out, *widthMM)
	stlPath := base + ".stl"
	if !*noSTL {
		// Fail before any mesh work if the destination is unusable.
		if err := export.CheckTarget(stlPath); err != nil {
			return err
		}
	}

	pngPath := base + "_height_16bit.png"
	rawPath := base + "_height_mm.f32"
	if err := heightmap.WritePNG16(field, pngPath); err != nil {
		return err
	}
	if err := heightmap.WriteRaw(field, rawPath); err != nil {
		return err
	}
	fmt.Printf("saved: %s , %s\n", filepath.Base(pngPath), filepath.Base(rawPath))
	fmt.Printf("thickness range: %.3f .. %.3f mm\n", field.Min(), field.Max())

	if *noSTL {
		return nil
	}

	fmt.Printf("Meshing %dx%d field at %.4f mm/px...", field.Width(), field.Height(), pxMM)
	mesh, err := relief.Solidify(field, pxMM)
	if err != nil {
		return err
	}
	fmt.Println("done")

	if *validate {
		if err := export.Validate(mesh); err != nil {
			return err
		}
	}

	fmt.Printf("Writing STL file '%s'...", stlPath)
	if err := export.WriteSTL(mesh, stlPath); err != nil {
		return err
	}
	fmt.Println("done")
	return nil
}

func buildFromImage(path string, px int, opts relief.Options) (*relief.Field, float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}
	pb, err := imgio.Load(path, px)
	if err != nil {
		return nil, 0, err
	}
	return relief.BuildThicknessField(pb, opts)
}

func buildFromDEM(path, diffPath string, x, y, w, h uint, zero, vscale, widthMM float64,
	flipX, flipY, rot180 bool) (*relief.Field, float64, error) {

	field, err := dem.FromGeoTIFF(path, x, y, w, h)
	if err != nil {
		return nil, 0, err
	}

	if diffPath != "" {
		other, err := dem.FromGeoTIFF(diffPath, x, y, w, h)
		if err != nil {
			return nil, 0, err
		}
		if err := dem.Diff(field, other); err != nil {
			return nil, 0, err
		}
	}

	fmt.Printf("Setting minimum height value to %f...", zero)
	dem.Zero(field, float32(zero))
	fmt.Println("done")

	if vscale != 1.0 {
		fmt.Printf("Adjusting vertical scale by factor of %f...", vscale)
		dem.Scale(field, float32(vscale))
		fmt.Println("done")
	}

	relief.ApplyOrientation(field, flipX, flipY, rot180)

	return field, widthMM / float64(field.Width()), nil
}

// outBase resolves the output basename. Default: beside the input, named
// <stem>_W<width-mm>mm. A relative -out is resolved under the input's
// directory; an absolute -out is used as-is.
func outBase(inPath, outOpt string, widthMM float64) string {
	dir := filepath.Dir(inPath)
	if outOpt == "" {
		stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
		return filepath.Join(dir, fmt.Sprintf("%s_W%gmm", stem, widthMM))
	}
	if filepath.IsAbs(outOpt) {
		return outOpt
	}
	return filepath.Join(dir, outOpt)
}

func main() {
	if err := realMain(); err != nil {
		essentials.Die("Error:", err)
	}
}
