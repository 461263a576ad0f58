package service

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

const (
	qrSize    = 300
	qrMargin  = 1
	pngPrefix = "data:image/png;base64,"
)

// Renderer turns text into an image data URI.
type Renderer interface {
	Render(content string) (string, error)
}

// QRRenderer renders black-on-white PNG QR codes with high error correction.
type QRRenderer struct {
	writer *qrcode.QRCodeWriter
}

func NewQRRenderer() *QRRenderer {
	return &QRRenderer{writer: qrcode.NewQRCodeWriter()}
}

func (r *QRRenderer) Render(content string) (string, error) {
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_H,
		gozxing.EncodeHintType_MARGIN:           qrMargin,
	}
	matrix, err := r.writer.Encode(content, gozxing.BarcodeFormat_QR_CODE, qrSize, qrSize, hints)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, matrix); err != nil {
		return "", err
	}
	return pngPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
