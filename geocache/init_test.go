package geocache_test

import (
	"context"
	"sync"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/peermap/peermap/geocache"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Lookup(ctx context.Context, ip string) (geocache.Location, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(geocache.Location), args.Error(1)
}

type recordingLogger struct {
	mutex        sync.Mutex
	lookupErrors []string
	loadWarnings []string
	saveErrors   []string
}

func (r *recordingLogger) LookupError(ip string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.lookupErrors = append(r.lookupErrors, ip)
}

func (r *recordingLogger) LoadWarning(key string, msg string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.loadWarnings = append(r.loadWarnings, key)
}

func (r *recordingLogger) SaveError(path string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.saveErrors = append(r.saveErrors, path)
}

type FsTestSuite struct {
	suite.Suite

	fs     afero.Fs
	logger *recordingLogger
}

func (suite *FsTestSuite) SetupTest() {
	suite.fs = afero.NewMemMapFs()
	suite.logger = &recordingLogger{}
}

type HTTPMockTestSuite struct {
	suite.Suite
}

func (suite *HTTPMockTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *HTTPMockTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *HTTPMockTestSuite) TearDownTest() {
	httpmock.Reset()
}
