package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfImageName = "doodle"

// encodePDF places the raster on a single page measured in points, one
// point per pixel, so the page has the canvas' aspect ratio.
func encodePDF(w io.Writer, img image.Image, meta Meta) error {
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	if wd <= 0 || ht <= 0 {
		return fmt.Errorf("pdf: empty image %v", b)
	}

	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return fmt.Errorf("pdf: embed raster: %w", err)
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("DoodlePad", true)
	if meta.Title != "" {
		p.SetTitle(meta.Title, true)
	}
	if meta.Session != "" {
		p.SetSubject("session "+meta.Session, true)
	}
	if !meta.Created.IsZero() {
		p.SetCreationDate(meta.Created)
	}
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(pdfImageName, opts, &raw)
	p.ImageOptions(pdfImageName, 0, 0, wd, ht, false, opts, 0, "")

	return p.Output(w)
}
