package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/Sarthak-Sidhant/s1r/constants"
	"github.com/Sarthak-Sidhant/s1r/internal/dispatch"
	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/grid"
	"github.com/Sarthak-Sidhant/s1r/internal/imgutil"
	"github.com/Sarthak-Sidhant/s1r/internal/ocr"
)

// artifactWriter persists per-record recognition artifacts so the
// parse stage can run later, independently: cropped region images,
// recognized text files and a status marker per record.
type artifactWriter struct {
	dir string
}

func newArtifactWriter(root, pageID string) (*artifactWriter, error) {
	dir := filepath.Join(root, "ocr", pageID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &artifactWriter{dir: dir}, nil
}

func (w *artifactWriter) write(tile grid.Tile, page *image.Gray, results map[dispatch.Key]ocr.Result, status constants.RecordStatus) error {
	base := filepath.Join(w.dir, "record_"+tile.ID)

	// Full tile crop kept alongside the regions for debugging.
	if err := w.writePNG(base+".png", imgutil.Crop(page, tile.Bounds)); err != nil {
		return err
	}
	for _, kind := range entity.RegionKinds {
		crop := imgutil.Crop(page, tile.SubRegion(kind))
		if err := w.writePNG(fmt.Sprintf("%s_%s.png", base, kind), crop); err != nil {
			return err
		}
		res := results[dispatch.Key{TileID: tile.ID, Kind: kind}]
		if err := os.WriteFile(fmt.Sprintf("%s_%s.txt", base, kind), []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("write %s text: %w", kind, err)
		}
	}
	if err := os.WriteFile(base+".status", []byte(status), 0o644); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

func (w *artifactWriter) writePNG(path string, img image.Image) error {
	data, err := imgutil.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
