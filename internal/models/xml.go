package models

import "encoding/xml"

// TideDocument is the root <tide> element every tideapi.php request returns.
// Exactly one of the child pointers is set depending on the request type.
type TideDocument struct {
	XMLName        xml.Name           `xml:"tide"`
	StationInfo    *StationInfoXML    `xml:"stationinfo"`
	LocationData   *LocationDataXML   `xml:"locationdata"`
	LocationLevel  *LocationLevelXML  `xml:"locationlevel"`
	StandardLevels *StandardLevelsXML `xml:"standardlevels"`
	Languages      *LanguagesXML      `xml:"languages"`
	NoData         *NoDataXML         `xml:"nodata"`
}

type StationInfoXML struct {
	Locations []LocationXML `xml:"location"`
}

type LocationXML struct {
	Name      string  `xml:"name,attr"`
	Code      string  `xml:"code,attr"`
	Latitude  float64 `xml:"latitude,attr"`
	Longitude float64 `xml:"longitude,attr"`
	Type      string  `xml:"type,attr"`
}

type LocationDataXML struct {
	Location     *LocationXML   `xml:"location"`
	RefLevelCode string         `xml:"reflevelcode"`
	Data         []DataGroupXML `xml:"data"`
}

type DataGroupXML struct {
	Type        string          `xml:"type,attr"`
	Unit        string          `xml:"unit,attr"`
	WaterLevels []WaterLevelXML `xml:"waterlevel"`
}

type WaterLevelXML struct {
	Value string `xml:"value,attr"`
	Time  string `xml:"time,attr"`
	Flag  string `xml:"flag,attr"`
}

type LocationLevelXML struct {
	RefLevels []RefLevelXML `xml:"reflevel"`
}

type RefLevelXML struct {
	Code  string `xml:"code,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
	Value string `xml:",chardata"`
}

type StandardLevelsXML struct {
	RefLevels []RefLevelXML `xml:"reflevel"`
}

type LanguagesXML struct {
	Languages []LangXML `xml:"lang"`
}

type LangXML struct {
	Code string `xml:"code,attr"`
	Name string `xml:"name,attr"`
}

// NoDataXML is the upstream's answer when a position is on land or outside
// the covered area.
type NoDataXML struct {
	Info string `xml:"info,attr"`
}
