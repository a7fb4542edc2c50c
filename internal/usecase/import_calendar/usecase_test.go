package import_calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	icsClient "github.com/m04kA/SMC-CalendarService/internal/integrations/ics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFetcher struct {
	body []byte
	err  error
	url  string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.url = url
	return f.body, f.err
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//SMC//Import Test//RU\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly@example.com\r\n" +
	"DTSTART:20261014T090000Z\r\n" +
	"DTEND:20261014T100000Z\r\n" +
	"SUMMARY:Еженедельный обзор\r\n" +
	"RRULE:FREQ=WEEKLY\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:urgent@example.com\r\n" +
	"DTSTART:20261014T110000Z\r\n" +
	"SUMMARY:ASAP звонок поставщику\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func newUseCase(fetcher *fakeFetcher) *UseCase {
	return NewUseCase(fetcher, icsClient.NewParser(nil, nopLogger{}), rulesStore.NewStore(nil), nil, nopLogger{})
}

func TestUseCase_ExecuteInline(t *testing.T) {
	uc := newUseCase(&fakeFetcher{})

	resp, err := uc.Execute(context.Background(), &Request{ICS: sampleICS})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, int64(1), resp.RulesVersion)

	weekly := resp.Events[0]
	assert.Equal(t, domain.TierRecurrence, weekly.Source)
	assert.Equal(t, "#0ea5e9", weekly.Color)
	assert.Equal(t, domain.TypeImported, weekly.Event.Type)

	urgent := resp.Events[1]
	assert.Equal(t, domain.TierPattern, urgent.Source)
	assert.Equal(t, "urgent", urgent.RuleID)
}

func TestUseCase_ExecuteFromURL(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(sampleICS)}
	uc := newUseCase(fetcher)

	resp, err := uc.Execute(context.Background(), &Request{URL: "  https://example.com/cal.ics "})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/cal.ics", fetcher.url)
	assert.Len(t, resp.Events, 2)
}

func TestUseCase_ExecuteErrors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
		req     *Request
		wantErr error
	}{
		{"nothing given", &fakeFetcher{}, &Request{}, ErrInvalidInput},
		{"both given", &fakeFetcher{}, &Request{URL: "https://x", ICS: sampleICS}, ErrInvalidInput},
		{"bad url", &fakeFetcher{err: fmt.Errorf("%w: ftp", icsClient.ErrInvalidURL)}, &Request{URL: "ftp://x"}, ErrInvalidInput},
		{"private host", &fakeFetcher{err: fmt.Errorf("%w: \"10.0.0.5\"", icsClient.ErrForbiddenHost)}, &Request{URL: "http://10.0.0.5/cal.ics"}, ErrInvalidInput},
		{"not found", &fakeFetcher{err: icsClient.ErrCalendarNotFound}, &Request{URL: "https://x"}, ErrCalendarNotFound},
		{"too large", &fakeFetcher{err: icsClient.ErrBodyTooLarge}, &Request{URL: "https://x"}, ErrCalendarTooLarge},
		{"unavailable", &fakeFetcher{err: errors.New("timeout")}, &Request{URL: "https://x"}, ErrCalendarUnavailable},
		{"garbage", &fakeFetcher{}, &Request{ICS: "hello"}, ErrInvalidCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(tt.fetcher).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
