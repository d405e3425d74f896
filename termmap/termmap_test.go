package termmap_test

import (
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/peermap/peermap/geocache"
	"github.com/peermap/peermap/termmap"
)

func entriesOf(data map[string]geocache.Location) iter.Seq2[string, geocache.Location] {
	return func(yield func(string, geocache.Location) bool) {
		for ip, loc := range data {
			if !yield(ip, loc) {
				return
			}
		}
	}
}

type TableTestSuite struct {
	suite.Suite
}

func (suite *TableTestSuite) TestRows() {
	buf := &strings.Builder{}

	termmap.Table(buf, entriesOf(map[string]geocache.Location{
		"1.2.3.4": {
			IP:          "1.2.3.4",
			CountryName: "Germany",
			CityName:    "Berlin",
			Latitude:    52.52,
			Longitude:   13.4,
			IsProxy:     true,
		},
	}))

	out := buf.String()

	suite.Contains(out, "1.2.3.4")
	suite.Contains(out, "Germany")
	suite.Contains(out, "Berlin")
	suite.Contains(out, "52.5200")
	suite.Contains(out, "yes")
}

func (suite *TableTestSuite) TestCountryNameBackfill() {
	buf := &strings.Builder{}

	termmap.Table(buf, entriesOf(map[string]geocache.Location{
		"1.2.3.4": {IP: "1.2.3.4", CountryCode: "NO"},
	}))

	suite.Contains(buf.String(), "Norway")
}

type PlotTestSuite struct {
	suite.Suite
}

func (suite *PlotTestSuite) TestFrameAndMarker() {
	buf := &strings.Builder{}

	termmap.Plot(buf, []geocache.Location{
		{Latitude: 90, Longitude: -180},
	}, 10, 4)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	suite.Require().Len(lines, 6)
	suite.Equal("+----------+", lines[0])
	suite.Equal("+----------+", lines[5])
	suite.Equal('*', rune(lines[1][1]))
}

func (suite *PlotTestSuite) TestEmptyInput() {
	buf := &strings.Builder{}

	termmap.Plot(buf, nil, 10, 4)

	suite.NotContains(buf.String(), "*")
}

func TestTable(t *testing.T) {
	suite.Run(t, &TableTestSuite{})
}

func TestPlot(t *testing.T) {
	suite.Run(t, &PlotTestSuite{})
}
