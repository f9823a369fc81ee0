package models

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStationList(t *testing.T) {
	t.Parallel()

	payload := `<?xml version="1.0" encoding="UTF-8"?>
<tide>
  <stationinfo>
    <location name="ANDENES" code="ANX" latitude="69.326067" longitude="16.134848" type="PERM"/>
    <location name="OSLO" code="OSL" latitude="59.908559" longitude="10.734510" type="PERM"/>
  </stationinfo>
</tide>`

	var doc TideDocument
	require.NoError(t, xml.Unmarshal([]byte(payload), &doc))

	require.NotNil(t, doc.StationInfo)
	require.Len(t, doc.StationInfo.Locations, 2)
	assert.Equal(t, "ANX", doc.StationInfo.Locations[0].Code)
	assert.Equal(t, "ANDENES", doc.StationInfo.Locations[0].Name)
	assert.InDelta(t, 69.326067, doc.StationInfo.Locations[0].Latitude, 1e-9)
	assert.InDelta(t, 16.134848, doc.StationInfo.Locations[0].Longitude, 1e-9)
	assert.Equal(t, "PERM", doc.StationInfo.Locations[0].Type)
	assert.Nil(t, doc.LocationData)
	assert.Nil(t, doc.NoData)
}

func TestDecodeLocationData(t *testing.T) {
	t.Parallel()

	payload := `<tide>
  <locationdata>
    <location name="OSLO" code="OSL" latitude="59.908559" longitude="10.734510"/>
    <reflevelcode>CD</reflevelcode>
    <data type="observation" unit="cm">
      <waterlevel value="96.1" time="2017-01-01T10:00:00+01:00" flag="obs"/>
      <waterlevel value="94.5" time="2017-01-01T11:00:00+01:00" flag="obs"/>
    </data>
    <data type="prediction" unit="cm">
      <waterlevel value="90.0" time="2017-01-01T10:00:00+01:00" flag="pre"/>
    </data>
  </locationdata>
</tide>`

	var doc TideDocument
	require.NoError(t, xml.Unmarshal([]byte(payload), &doc))

	require.NotNil(t, doc.LocationData)
	assert.Equal(t, "CD", doc.LocationData.RefLevelCode)
	require.NotNil(t, doc.LocationData.Location)
	assert.Equal(t, "OSL", doc.LocationData.Location.Code)

	require.Len(t, doc.LocationData.Data, 2)
	assert.Equal(t, "observation", doc.LocationData.Data[0].Type)
	assert.Equal(t, "cm", doc.LocationData.Data[0].Unit)
	require.Len(t, doc.LocationData.Data[0].WaterLevels, 2)
	assert.Equal(t, "96.1", doc.LocationData.Data[0].WaterLevels[0].Value)
	assert.Equal(t, "obs", doc.LocationData.Data[0].WaterLevels[0].Flag)
	require.Len(t, doc.LocationData.Data[1].WaterLevels, 1)
	assert.Equal(t, "pre", doc.LocationData.Data[1].WaterLevels[0].Flag)
}

func TestDecodeNoData(t *testing.T) {
	t.Parallel()

	payload := `<tide><nodata info="Parameters are outside the data coverage"/></tide>`

	var doc TideDocument
	require.NoError(t, xml.Unmarshal([]byte(payload), &doc))

	require.NotNil(t, doc.NoData)
	assert.Equal(t, "Parameters are outside the data coverage", doc.NoData.Info)
}

func TestDecodeLevelsAndLanguages(t *testing.T) {
	t.Parallel()

	levels := `<tide>
  <locationlevel>
    <reflevel code="HOWL" name="Highest observed water level" descr="Observed 1987-02-16">242</reflevel>
    <reflevel code="MSL" name="Mean sea level" descr="Average of observations">110</reflevel>
  </locationlevel>
</tide>`

	var doc TideDocument
	require.NoError(t, xml.Unmarshal([]byte(levels), &doc))
	require.NotNil(t, doc.LocationLevel)
	require.Len(t, doc.LocationLevel.RefLevels, 2)
	assert.Equal(t, "HOWL", doc.LocationLevel.RefLevels[0].Code)
	assert.Equal(t, "242", doc.LocationLevel.RefLevels[0].Value)

	languages := `<tide><languages><lang code="nb" name="Bokmål"/><lang code="en" name="English"/></languages></tide>`

	doc = TideDocument{}
	require.NoError(t, xml.Unmarshal([]byte(languages), &doc))
	require.NotNil(t, doc.Languages)
	require.Len(t, doc.Languages.Languages, 2)
	assert.Equal(t, "en", doc.Languages.Languages[1].Code)
}
