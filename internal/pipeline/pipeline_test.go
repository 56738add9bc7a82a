package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/store"
	"github.com/copperworks/labelcheck/internal/warning"
)

type fakeExtractor struct {
	sources []model.SourceExtraction
	err     error
}

func (f *fakeExtractor) ExtractAll(_ context.Context, _ []extraction.LabelImage) ([]model.SourceExtraction, error) {
	return f.sources, f.err
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveReport(ctx context.Context, result model.ApplicationResult) (*model.Report, error) {
	args := m.Called(ctx, result)
	if r := args.Get(0); r != nil {
		return r.(*model.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*model.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListReports(ctx context.Context, filter store.ReportFilter) ([]model.Report, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]model.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) DeleteReport(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

func fullSource(index int) model.SourceExtraction {
	return model.SourceExtraction{
		ImageIndex: index,
		Extraction: model.RawExtraction{
			BrandName:         "Old Tom",
			ClassType:         "Gin",
			AlcoholContent:    "47% ABV",
			NetContents:       "750 mL",
			BottlerProducer:   "Copperworks Distilling",
			CountryOfOrigin:   "United States",
			GovernmentWarning: warning.Canonical,
			Confidence:        0.95,
			Formatting: &model.WarningFormatting{
				IsUppercase: model.TriDetected,
				IsBold:      model.TriDetected,
			},
		},
	}
}

func testImages(n int) []extraction.LabelImage {
	imgs := make([]extraction.LabelImage, n)
	for i := range imgs {
		imgs[i] = extraction.LabelImage{Index: i, Name: "label.jpg", MediaType: "image/jpeg", Data: []byte{0xFF}}
	}
	return imgs
}

func fullExpected() *model.ExpectedValues {
	return &model.ExpectedValues{
		BrandName:       "Old Tom",
		ClassType:       "Gin",
		AlcoholContent:  "47%",
		NetContents:     "750ml",
		BottlerProducer: "Copperworks Distilling",
		CountryOfOrigin: "United States",
	}
}

func TestRun_FullPassPersists(t *testing.T) {
	st := &mockStore{}
	st.On("SaveReport", mock.Anything, mock.AnythingOfType("model.ApplicationResult")).
		Return(&model.Report{}, nil).Once()

	p := New(&fakeExtractor{sources: []model.SourceExtraction{fullSource(0)}}, st)

	result, err := p.Run(context.Background(), Request{
		ApplicationID:   "app-1",
		ApplicationName: "Old Tom Gin 750ml",
		Images:          testImages(1),
		Expected:        fullExpected(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OverallPass, result.OverallStatus)
	assert.Equal(t, 1, result.ImageCount)
	assert.NotEmpty(t, result.ID)
	st.AssertExpectations(t)
}

func TestRun_ExtractionFailureProducesErrorResult(t *testing.T) {
	st := &mockStore{}
	st.On("SaveReport", mock.Anything, mock.AnythingOfType("model.ApplicationResult")).
		Return(&model.Report{}, nil).Once()

	p := New(&fakeExtractor{err: assert.AnError}, st)

	result, err := p.Run(context.Background(), Request{
		ApplicationID: "app-err",
		Images:        testImages(2),
	})
	require.NoError(t, err, "extraction failure is recorded, not returned")
	assert.Equal(t, model.OverallError, result.OverallStatus)
	assert.Equal(t, 2, result.ImageCount)
	assert.NotEmpty(t, result.ErrorMessage)
	st.AssertExpectations(t)
}

func TestRun_NilStoreSkipsPersist(t *testing.T) {
	p := New(&fakeExtractor{sources: []model.SourceExtraction{fullSource(0)}}, nil)

	result, err := p.Run(context.Background(), Request{
		ApplicationID: "app-1",
		Images:        testImages(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OverallPass, result.OverallStatus)
}

func TestRun_LabelOnlyMode(t *testing.T) {
	p := New(&fakeExtractor{sources: []model.SourceExtraction{fullSource(0)}}, nil)

	result, err := p.Run(context.Background(), Request{
		ApplicationID: "app-1",
		Images:        testImages(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OverallPass, result.OverallStatus)
	for _, fr := range result.FieldResults {
		assert.Equal(t, model.StatusNotProvided, fr.Status, fr.FieldName)
	}
}

func TestRun_SaveErrorSurfaces(t *testing.T) {
	st := &mockStore{}
	st.On("SaveReport", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	p := New(&fakeExtractor{sources: []model.SourceExtraction{fullSource(0)}}, st)

	_, err := p.Run(context.Background(), Request{ApplicationID: "app-1", Images: testImages(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save report")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&fakeExtractor{err: context.Canceled}, nil)

	_, err := p.Run(ctx, Request{ApplicationID: "app-1", Images: testImages(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}
