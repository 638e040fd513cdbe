package services

import (
	"encoding/xml"
	"fmt"
	"math"
	"time"

	"ride-tracker-backend/internal/models"
)

const gpxCreator = "ride-tracker-backend"

type gpxDocument struct {
	XMLName  xml.Name    `xml:"gpx"`
	Version  string      `xml:"version,attr"`
	Creator  string      `xml:"creator,attr"`
	XMLNS    string      `xml:"xmlns,attr"`
	Metadata gpxMetadata `xml:"metadata"`
	Track    gpxTrack    `xml:"trk"`
}

type gpxMetadata struct {
	Name string `xml:"name,omitempty"`
	Time string `xml:"time"`
}

type gpxTrack struct {
	Name    string     `xml:"name,omitempty"`
	Desc    string     `xml:"desc,omitempty"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time,omitempty"`
}

// RenderGPX encodes the activity path as a GPX 1.1 track
func RenderGPX(a *models.Activity) ([]byte, error) {
	doc := gpxDocument{
		Version: "1.1",
		Creator: gpxCreator,
		XMLNS:   "http://www.topografix.com/GPX/1/1",
		Metadata: gpxMetadata{
			Time: a.StartTime.UTC().Format(time.RFC3339),
		},
	}
	if a.Name != nil {
		doc.Metadata.Name = *a.Name
		doc.Track.Name = *a.Name
	}
	if a.Notes != nil {
		doc.Track.Desc = *a.Notes
	}

	doc.Track.Segment.Points = make([]gpxPoint, 0, len(a.Path))
	for _, p := range a.Path {
		pt := gpxPoint{Lat: p.Lat, Lon: p.Lng}
		if p.T > 0 {
			sec, frac := math.Modf(p.T)
			pt.Time = time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339Nano)
		}
		doc.Track.Segment.Points = append(doc.Track.Segment.Points, pt)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode gpx: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
