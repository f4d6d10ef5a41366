package frames

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	imagepkg "github.com/youruser/photoframe/internal/image"
)

// CatalogFile is looked up inside the data directory.
const CatalogFile = "frames.csv"

// Default is the catalog used when no frames.csv exists: one frame backed by
// frame.png in the data directory.
func Default(dataDir string) Catalog {
	return Catalog{{
		ID:     "1",
		Name:   "Frame 1",
		Source: filepath.Join(dataDir, "frame.png"),
		Layout: imagepkg.DefaultLayout(),
	}}
}

// LoadFromDataDir reads frames.csv from dataDir (best-effort): a missing file
// yields the default catalog. Relative sources are resolved against dataDir;
// URLs are kept as they are.
//
// Columns: id, name, source, and optionally name_x, name_y, font_scale,
// overlay_x, overlay_y, overlay_w, overlay_h, text_color. Empty layout cells
// keep the default value.
func LoadFromDataDir(dataDir string) (Catalog, error) {
	path := filepath.Join(dataDir, CatalogFile)
	fp, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(dataDir), nil
	}
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "source"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv %s: missing %q column", path, required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := Catalog{}
	seen := map[string]bool{}
	for n, row := range rows[1:] {
		line := n + 2
		f := Frame{
			ID:     get(row, "id"),
			Name:   get(row, "name"),
			Source: get(row, "source"),
			Layout: imagepkg.DefaultLayout(),
		}
		if f.ID == "" && f.Source == "" {
			continue
		}
		if f.ID == "" || f.Source == "" {
			return nil, fmt.Errorf("%s:%d: id and source are required", path, line)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%s:%d: duplicate frame id %q", path, line, f.ID)
		}
		seen[f.ID] = true
		if f.Name == "" {
			f.Name = "Frame " + f.ID
		}
		if !isURL(f.Source) && !filepath.IsAbs(f.Source) {
			f.Source = filepath.Join(dataDir, f.Source)
		}

		fields := []struct {
			col string
			dst *float64
		}{
			{"name_x", &f.Layout.NameX},
			{"name_y", &f.Layout.NameY},
			{"font_scale", &f.Layout.FontScale},
			{"overlay_x", &f.Layout.OverlayX},
			{"overlay_y", &f.Layout.OverlayY},
			{"overlay_w", &f.Layout.OverlayW},
			{"overlay_h", &f.Layout.OverlayH},
		}
		for _, fd := range fields {
			s := get(row, fd.col)
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 || v > 1 {
				return nil, fmt.Errorf("%s:%d: %s must be a fraction in [0,1], got %q", path, line, fd.col, s)
			}
			*fd.dst = v
		}
		if s := get(row, "text_color"); s != "" {
			c, err := parseHexColor(s)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			f.Layout.TextColor = c
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no frames found in %s", path)
	}
	return out, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseHexColor accepts #rrggbb.
func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("text_color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("text_color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
