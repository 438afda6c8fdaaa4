package catalog

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// RenderBarcodePNG encodes the given text as a CODE-128 raster at the target
// pixel size. Stateless: output depends only on the arguments.
func RenderBarcodePNG(text string, width, height int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("render barcode: empty text")
	}

	code, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("render barcode: %w", err)
	}

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("render barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("render barcode: %w", err)
	}
	return buf.Bytes(), nil
}
