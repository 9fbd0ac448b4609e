// Package markup emits the KML-style output of the density aggregator:
// one folder of trajectory polylines and one folder of 10 percentile
// density bands, each band a nested folder of colored grid-cell squares.
package markup

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/paulmach/orb"

	"trajectory/internal/errs"
	"trajectory/internal/geo"
	"trajectory/internal/rasterize"
)

// classPalette is the fixed 10-color cycle used for density bands,
// brightest/coolest to warmest.
var classPalette = [10]string{
	"ff0000", "ff8800", "ffff00", "88ff00", "00ff00",
	"00ff88", "00ffff", "0088ff", "0000ff", "8800ff",
}

// KML is the document root.
type KML struct {
	XMLName   xml.Name `xml:"kml"`
	Namespace string   `xml:"xmlns,attr"`
	Document  Document `xml:"Document"`
}

// Document holds the document-level metadata, the color styles used by
// the density folders, and the top-level folders.
type Document struct {
	Description string   `xml:"description,omitempty"`
	Name        string   `xml:"name,omitempty"`
	Styles      []Style  `xml:"Style"`
	Folders     []Folder `xml:"Folder"`
}

// Style is one named PolyStyle, referenced by a Placemark's StyleURL.
type Style struct {
	ID        string    `xml:"id,attr"`
	PolyStyle PolyStyle `xml:"PolyStyle"`
}

// PolyStyle controls the fill color and rendering mode of a Polygon.
type PolyStyle struct {
	Color     string `xml:"color"`
	ColorMode string `xml:"colorMode"`
	Fill      int    `xml:"fill"`
	Outline   int    `xml:"outline"`
}

// Folder groups related placemarks (or further folders) under a name.
type Folder struct {
	Name        string      `xml:"name,omitempty"`
	Description string      `xml:"description,omitempty"`
	Folders     []Folder    `xml:"Folder,omitempty"`
	Placemarks  []Placemark `xml:"Placemark,omitempty"`
}

// Placemark is either a trajectory LineString or a density-cell Polygon.
type Placemark struct {
	Visibility int         `xml:"visibility"`
	StyleURL   string      `xml:"styleUrl,omitempty"`
	LineString *LineString `xml:"LineString,omitempty"`
	Polygon    *Polygon    `xml:"Polygon,omitempty"`
}

// LineString renders a trajectory's recorded points as a connected path.
type LineString struct {
	Coordinates string `xml:"coordinates"`
}

// Polygon renders one grid cell as a closed square footprint.
type Polygon struct {
	AltitudeMode    string          `xml:"altitudeMode"`
	OuterBoundaryIs OuterBoundaryIs `xml:"outerBoundaryIs"`
}

// OuterBoundaryIs wraps the single ring of a Polygon.
type OuterBoundaryIs struct {
	LinearRing LinearRing `xml:"LinearRing"`
}

// LinearRing is the closed coordinate ring of a Polygon boundary.
type LinearRing struct {
	Coordinates string `xml:"coordinates"`
}

// TrajectoryFolder builds the "Trajektorien"-equivalent folder: one
// Placemark per trajectory, each an invisible LineString so the path is
// available in the viewer's layer list without cluttering the map by
// default (mirrors the original's <visibility>0</visibility>).
func TrajectoryFolder(name string, trajectories [][]orb.Point) Folder {
	folder := Folder{Name: name}
	for _, points := range trajectories {
		var b strings.Builder
		for _, p := range points {
			fmt.Fprintf(&b, "%10.6f,%10.6f,0\n", p[0], p[1])
		}
		folder.Placemarks = append(folder.Placemarks, Placemark{
			Visibility: 0,
			LineString: &LineString{Coordinates: b.String()},
		})
	}
	return folder
}

// DensityFolder builds the percentile-banded density folder and its
// color styles, one nested folder per band, each cell rendered as a
// resKm-sided square offset by (offLo, offLa).
func DensityFolder(cls rasterize.Classification, resKm, offLo, offLa float64, opacity string, colorClass [10]int) (Folder, []Style) {
	styles := make([]Style, 10)
	for i := 0; i < 10; i++ {
		styles[i] = Style{
			ID: fmt.Sprintf("%d", i+1),
			PolyStyle: PolyStyle{
				Color:     opacity + classPalette[colorClass[i]],
				ColorMode: "normal",
				Fill:      1,
				Outline:   0,
			},
		}
	}

	top := Folder{
		Name: "Density",
		Description: fmt.Sprintf("Peak: %.2f / Scale max: %.2f / Scale min: %.2f",
			cls.Max, cls.MaxScale, cls.Min),
	}
	dy := resKm / geo.DegDistance
	for k := 0; k < 10; k++ {
		pct := (float64(k+1)*cls.DeltaW + cls.Min) * 100.0 / cls.Max
		band := Folder{Name: fmt.Sprintf("at or above %.0f%%", pct)}
		for _, cell := range cls.Bands[k] {
			dx1 := resKm / (geo.DegDistance * cosDeg(cell.Lat))
			dx2 := resKm / (geo.DegDistance * cosDeg(cell.Lat+dy))
			x, y := cell.Lon, cell.Lat
			coords := fmt.Sprintf("%10.6f,%10.6f,0\n%10.6f,%10.6f,0\n%10.6f,%10.6f,0\n%10.6f,%10.6f,0\n%10.6f,%10.6f,0\n",
				x+offLo, y+offLa,
				x+dx1+offLo, y+offLa,
				x+dx2+offLo, y+dy+offLa,
				x+offLo, y+dy+offLa,
				x+offLo, y+offLa,
			)
			band.Placemarks = append(band.Placemarks, Placemark{
				StyleURL: fmt.Sprintf("#%d", k+1),
				Polygon: &Polygon{
					AltitudeMode: "relativeToGround",
					OuterBoundaryIs: OuterBoundaryIs{
						LinearRing: LinearRing{Coordinates: coords},
					},
				},
			})
		}
		top.Folders = append(top.Folders, band)
	}
	return top, styles
}

// Write assembles the full document and writes it to path.
func Write(path, docName, docDescription string, trajFolder Folder, densityFolder Folder, styles []Style) error {
	doc := KML{
		Namespace: "http://earth.google.com/kml/2.1",
		Document: Document{
			Name:        docName,
			Description: docDescription,
			Styles:      styles,
			Folders:     []Folder{trajFolder, densityFolder},
		},
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.Wrapf(errs.ErrSyntax, "marshalling density markup: %v", err)
	}
	out := xml.Header + string(data)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return errs.Wrapf(errs.ErrUnreadableFile, "writing markup file %s: %v", path, err)
	}
	return nil
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
