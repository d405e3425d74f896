package geocache_test

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/peermap/peermap/geocache"
)

type StoreTestSuite struct {
	FsTestSuite

	store geocache.Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.FsTestSuite.SetupTest()

	suite.store = geocache.NewStore(suite.fs, suite.logger)
}

func (suite *StoreTestSuite) TestLoadAbsentFile() {
	data, err := suite.store.Load("nowhere.json")

	suite.NoError(err)
	suite.Empty(data)
}

func (suite *StoreTestSuite) TestLoadObjectShape() {
	content := `{
  " 1.2.3.4 ": {"ip": "1.2.3.4", "latitude": 10, "longitude": 20},
  "5.6.7.8": null
}`

	suite.NoError(afero.WriteFile(suite.fs, "cache.json", []byte(content), 0644))

	data, err := suite.store.Load("cache.json")

	suite.NoError(err)
	suite.Len(data, 1)
	suite.Contains(data, "1.2.3.4")
	suite.InDelta(10.0, data["1.2.3.4"].Latitude, 1e-9)
	suite.InDelta(20.0, data["1.2.3.4"].Longitude, 1e-9)
	suite.Equal([]string{"5.6.7.8"}, suite.logger.loadWarnings)
}

func (suite *StoreTestSuite) TestLoadArrayShape() {
	content := `[
  {"1.2.3.4": {"city_name": "Oslo"}},
  {" 5.6.7.8": {"city_name": "Bergen"}},
  {"1.2.3.4": {"city_name": "Tromso"}}
]`

	suite.NoError(afero.WriteFile(suite.fs, "cache.json", []byte(content), 0644))

	data, err := suite.store.Load("cache.json")

	suite.NoError(err)
	suite.Len(data, 2)
	suite.Equal("Tromso", data["1.2.3.4"].CityName)
	suite.Equal("Bergen", data["5.6.7.8"].CityName)
}

func (suite *StoreTestSuite) TestLoadArrayShapeNullEntry() {
	content := `[{"1.2.3.4": null}, {"5.6.7.8": {"city_name": "Bergen"}}]`

	suite.NoError(afero.WriteFile(suite.fs, "cache.json", []byte(content), 0644))

	data, err := suite.store.Load("cache.json")

	suite.NoError(err)
	suite.Len(data, 1)
	suite.Equal([]string{"1.2.3.4"}, suite.logger.loadWarnings)
}

func (suite *StoreTestSuite) TestLoadMalformed() {
	suite.NoError(afero.WriteFile(suite.fs, "cache.json", []byte("{oops"), 0644))

	_, err := suite.store.Load("cache.json")

	suite.ErrorIs(err, geocache.ErrMalformedStore)
}

func (suite *StoreTestSuite) TestSaveShape() {
	data := map[string]*geocache.Location{
		"1.2.3.4": {IP: "1.2.3.4", CityName: "Oslo"},
	}

	suite.NoError(suite.store.Save("cache.json", data))

	content, err := afero.ReadFile(suite.fs, "cache.json")

	suite.NoError(err)
	suite.Equal(byte('{'), content[0])
	suite.Contains(string(content), "\n  \"1.2.3.4\"")
	suite.Equal(byte('\n'), content[len(content)-1])

	flat := map[string]*geocache.Location{}

	suite.NoError(json.Unmarshal(content, &flat))
	suite.Equal("Oslo", flat["1.2.3.4"].CityName)
}

func (suite *StoreTestSuite) TestSaveLoadRoundTrip() {
	data := map[string]*geocache.Location{
		"1.2.3.4": {IP: "1.2.3.4", CountryCode: "NO", Latitude: 59.91, Longitude: 10.75},
		"5.6.7.8": {IP: "5.6.7.8", CountryCode: "DE", IsProxy: true},
	}

	suite.NoError(suite.store.Save("cache.json", data))

	loaded, err := suite.store.Load("cache.json")

	suite.NoError(err)
	suite.Equal(data, loaded)
}

func (suite *StoreTestSuite) TestSaveOverwrites() {
	suite.NoError(afero.WriteFile(suite.fs, "cache.json", []byte(`[{"9.9.9.9": {}}]`), 0644))

	suite.NoError(suite.store.Save("cache.json", map[string]*geocache.Location{}))

	loaded, err := suite.store.Load("cache.json")

	suite.NoError(err)
	suite.Empty(loaded)
}

func TestStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{})
}
