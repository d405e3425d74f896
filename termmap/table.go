// Package termmap renders cached locations for a terminal: a tabular
// listing and a crude scatter plot of the coordinates.
package termmap

import (
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pariz/gountries"

	"github.com/peermap/peermap/geocache"
)

var countryQuery = gountries.New()

// Table writes one row per cached entry. Entries with an empty country
// name get it backfilled from the country code.
func Table(w io.Writer, entries iter.Seq2[string, geocache.Location]) {
	table := tablewriter.NewWriter(w)

	table.SetHeader([]string{"IP", "Country", "Region", "City", "Lat", "Lon", "Proxy"})

	for ip, loc := range entries {
		proxy := ""
		if loc.IsProxy {
			proxy = "yes"
		}

		table.Append([]string{
			ip,
			countryName(loc),
			loc.RegionName,
			loc.CityName,
			strconv.FormatFloat(loc.Latitude, 'f', 4, 64),
			strconv.FormatFloat(loc.Longitude, 'f', 4, 64),
			proxy,
		})
	}

	table.Render()
}

func countryName(loc geocache.Location) string {
	if loc.CountryName != "" {
		return loc.CountryName
	}

	country, ok := countryQuery.Countries[strings.ToUpper(loc.CountryCode)]
	if !ok {
		return loc.CountryCode
	}

	return country.Name.Common
}
