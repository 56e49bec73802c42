package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

const (
	qrSize      = 256
	captionBand = 40
)

// LabelService renders the scannable label issued at every chain stage. The
// embedded URL always points at the consumer provenance page for the chain's
// resolve id.
type LabelService interface {
	// Generate renders the label for the row (stage, id) whose scan should
	// resolve targetID, returning it as a PNG data URI.
	Generate(ctx context.Context, stage domain.Stage, id, targetID uint) (string, error)
	TargetURL(targetID uint) string
	StorageKey(stage domain.Stage, id uint) string
}

type labelService struct {
	log             *logger.Logger
	frontendBaseURL string
	labelDir        string
	fontFace        font.Face
}

func NewLabelService(log *logger.Logger, frontendBaseURL, labelDir, fontPath string) (LabelService, error) {
	serviceLog := log.With("service", "LabelService")

	var face font.Face
	if strings.TrimSpace(fontPath) != "" {
		loaded, err := loadFontFace(fontPath, 18)
		if err != nil {
			return nil, fmt.Errorf("could not load label font: %w", err)
		}
		face = loaded
	}

	return &labelService{
		log:             serviceLog,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		labelDir:        labelDir,
		fontFace:        face,
	}, nil
}

func (ls *labelService) TargetURL(targetID uint) string {
	return fmt.Sprintf("%s/consumer/%d", ls.frontendBaseURL, targetID)
}

func (ls *labelService) StorageKey(stage domain.Stage, id uint) string {
	return fmt.Sprintf("%s/%d.png", stage, id)
}

func (ls *labelService) Generate(ctx context.Context, stage domain.Stage, id, targetID uint) (string, error) {
	qr, err := qrcode.New(ls.TargetURL(targetID), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode label payload: %w", err)
	}
	img := qr.Image(qrSize)

	height := qrSize
	if ls.fontFace != nil {
		height += captionBand
	}
	dc := gg.NewContext(qrSize, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(img, 0, 0)
	if ls.fontFace != nil {
		dc.SetFontFace(ls.fontFace)
		dc.SetRGB(0, 0, 0)
		caption := fmt.Sprintf("%s #%d", strings.ToUpper(string(stage)), id)
		dc.DrawStringAnchored(caption, float64(qrSize)/2, float64(qrSize)+float64(captionBand)/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("failed to render label image: %w", err)
	}

	if ls.labelDir != "" {
		// Best effort; the data URI on the row is the source of truth.
		if err := ls.persist(stage, id, buf.Bytes()); err != nil {
			ls.log.Warn("failed to persist label image (ignored)", "stage", string(stage), "id", id, "error", err)
		}
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (ls *labelService) persist(stage domain.Stage, id uint, png []byte) error {
	path := filepath.Join(ls.labelDir, ls.StorageKey(stage, id))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}

func loadFontFace(path string, points float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}
