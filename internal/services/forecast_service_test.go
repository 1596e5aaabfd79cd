package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longDeclineCSV has enough crawls for the forecasters' minimum data
// requirements: text/html declines steadily over ten crawls.
func longDeclineCSV() []byte {
	csv := "crawl,mimetype_detected,pages,urls,%pages/crawl\n"
	for i := 0; i < 10; i++ {
		csv += fmt.Sprintf("CC-MAIN-2024-%02d,text/html,100,50,%.1f\n", i+1, 50.0-float64(i)*3.0)
	}
	return []byte(csv)
}

func TestForecastService_Execute(t *testing.T) {
	fetcher := &stubFetcher{data: longDeclineCSV()}
	analysis := NewAnalysisService(testLogger(), fetcher, nil, statsURL)
	service := NewForecastService(testLogger(), analysis)

	result, err := service.Execute(context.Background(), &ForecastRequest{
		MimeType: "text/html",
		Method:   "linear",
		Horizon:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, "text/html", result.MimeType)
	assert.Equal(t, "linear", result.Method)
	assert.Len(t, result.History, 10)
	require.Len(t, result.Predictions, 4)

	// Periods continue where the history ends
	assert.Equal(t, 11, result.Predictions[0].Period)
	assert.Equal(t, 14, result.Predictions[3].Period)

	// A steadily declining series keeps declining under a linear fit
	assert.Less(t, result.Predictions[3].Value, result.Predictions[0].Value)
	assert.Equal(t, "linear", result.ModelInfo.Algorithm)
}

func TestForecastService_NotDeclining(t *testing.T) {
	fetcher := &stubFetcher{data: longDeclineCSV()}
	analysis := NewAnalysisService(testLogger(), fetcher, nil, statsURL)
	service := NewForecastService(testLogger(), analysis)

	_, err := service.Execute(context.Background(), &ForecastRequest{
		MimeType: "video/mp4",
		Method:   "linear",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "MIME_NOT_DECLINING", svcErr.Code)
}

func TestForecastService_InvalidMethod(t *testing.T) {
	fetcher := &stubFetcher{data: longDeclineCSV()}
	analysis := NewAnalysisService(testLogger(), fetcher, nil, statsURL)
	service := NewForecastService(testLogger(), analysis)

	_, err := service.Execute(context.Background(), &ForecastRequest{
		MimeType: "text/html",
		Method:   "prophet",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "INVALID_METHOD", svcErr.Code)
	assert.Contains(t, svcErr.Details, "available_methods")
}

func TestForecastService_InsufficientData(t *testing.T) {
	// Four crawls classify as declining but are too few to forecast
	csv := "crawl,mimetype_detected,pages,urls,%pages/crawl\n" +
		"CC-MAIN-2024-10,text/html,100,50,50.0\n" +
		"CC-MAIN-2024-18,text/html,100,50,40.0\n" +
		"CC-MAIN-2024-26,text/html,100,50,30.0\n" +
		"CC-MAIN-2024-33,text/html,100,50,20.0\n"

	fetcher := &stubFetcher{data: []byte(csv)}
	analysis := NewAnalysisService(testLogger(), fetcher, nil, statsURL)
	service := NewForecastService(testLogger(), analysis)

	_, err := service.Execute(context.Background(), &ForecastRequest{
		MimeType: "text/html",
		Method:   "bass",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "INSUFFICIENT_DATA", svcErr.Code)
}
