package ics

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func calendar(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//SMC//Calendar Test//RU",
	}
	for _, e := range events {
		lines = append(lines, e)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func vevent(props ...string) string {
	return strings.Join(append(append([]string{"BEGIN:VEVENT"}, props...), "END:VEVENT"), "\r\n")
}

func TestParser_Parse(t *testing.T) {
	body := calendar(
		vevent(
			"UID:standup@example.com",
			"DTSTAMP:20261001T000000Z",
			"DTSTART:20261014T070000Z",
			"DTEND:20261014T071500Z",
			"SUMMARY:Планерка",
			"CATEGORIES:Work,MEETING",
			"STATUS:CONFIRMED",
			"PRIORITY:2",
			"RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		),
		vevent(
			"UID:holiday@example.com",
			"DTSTAMP:20261001T000000Z",
			"DTSTART;VALUE=DATE:20261104",
			"SUMMARY:Выходной",
			"STATUS:TENTATIVE",
		),
		vevent(
			"UID:hourly@example.com",
			"DTSTAMP:20261001T000000Z",
			"DTSTART:20261014T120000Z",
			"DTEND:20261015T010000Z",
			"STATUS:CANCELLED",
			"RRULE:FREQ=HOURLY;COUNT=3",
		),
	)

	parser := NewParser(time.FixedZone("MSK", 3*60*60), nopLogger{})
	events, err := parser.Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, events, 3)

	standup := events[0]
	assert.Equal(t, "standup@example.com", standup.ID)
	assert.Equal(t, domain.TypeImported, standup.Type)
	assert.Equal(t, domain.CategoryMeeting, standup.Category)
	assert.Equal(t, domain.EventStatusConfirmed, standup.Status)
	assert.Equal(t, domain.PriorityHigh, standup.Priority)
	assert.Equal(t, types.TimeString("10:00"), standup.StartTime)
	assert.Equal(t, types.TimeString("10:15"), standup.EndTime)
	assert.True(t, standup.IsRecurring)
	assert.Equal(t, domain.RecurrenceWeekly, standup.RecurrenceType)
	assert.Equal(t, "Планерка", standup.Title)

	holiday := events[1]
	assert.True(t, holiday.IsAllDay)
	assert.Empty(t, holiday.StartTime)
	assert.Equal(t, domain.CategoryEvent, holiday.Category)
	assert.Equal(t, domain.EventStatusPending, holiday.Status)
	assert.False(t, holiday.IsRecurring)

	hourly := events[2]
	assert.Equal(t, types.TimeString("15:00"), hourly.StartTime)
	assert.Empty(t, hourly.EndTime, "end on the next day is dropped")
	assert.Equal(t, domain.EventStatusCancelled, hourly.Status)
	assert.True(t, hourly.IsRecurring)
	assert.Empty(t, hourly.RecurrenceType)
}

func TestParser_SkipsBrokenEvents(t *testing.T) {
	body := calendar(
		vevent("UID:no-start@example.com", "SUMMARY:Без начала"),
		vevent("UID:bad-start@example.com", "DTSTART:20261014TXX", "SUMMARY:Мусор"),
		vevent("UID:ok@example.com", "DTSTART:20261014T090000Z", "SUMMARY:Ок"),
	)

	events, err := NewParser(nil, nopLogger{}).Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ok@example.com", events[0].ID)
	assert.Equal(t, types.TimeString("09:00"), events[0].StartTime)
}

func TestParser_Errors(t *testing.T) {
	parser := NewParser(nil, nopLogger{})

	_, err := parser.Parse([]byte("  \r\n"))
	assert.ErrorIs(t, err, ErrEmptyCalendar)

	_, err = parser.Parse([]byte("definitely not a calendar"))
	assert.ErrorIs(t, err, ErrParseCalendar)
}

func TestStatusAndPriorityMapping(t *testing.T) {
	assert.Equal(t, domain.EventStatusInProgress, statusFromICS("in-process"))
	assert.Equal(t, domain.EventStatus(""), statusFromICS("NEEDS-ACTION"))

	assert.Equal(t, domain.PriorityMedium, priorityFromICS("5"))
	assert.Equal(t, domain.PriorityLow, priorityFromICS("9"))
	assert.Equal(t, domain.TaskPriority(""), priorityFromICS("0"))
	assert.Equal(t, domain.TaskPriority(""), priorityFromICS("x"))

	assert.Equal(t, domain.RecurrenceYearly, recurrenceFromRRule("FREQ=YEARLY"))
	assert.Equal(t, domain.RecurrenceDaily, recurrenceFromRRule("FREQ=DAILY;INTERVAL=2"))
	assert.Equal(t, domain.RecurrenceType(""), recurrenceFromRRule("FREQ=SOMETIMES"))
}

func TestClient_Fetch(t *testing.T) {
	body := calendar(vevent("UID:a", "DTSTART:20261014T090000Z"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.ics":
			assert.Equal(t, "text/calendar", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(body))
		case "/big.ics":
			_, _ = w.Write([]byte(strings.Repeat("X", 2048)))
		case "/broken.ics":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(time.Second, 1024, true, nopLogger{})
	ctx := context.Background()

	got, err := client.Fetch(ctx, srv.URL+"/ok.ics")
	require.NoError(t, err)
	assert.Equal(t, body, string(got))

	_, err = client.Fetch(ctx, srv.URL+"/missing.ics")
	assert.ErrorIs(t, err, ErrCalendarNotFound)

	_, err = client.Fetch(ctx, srv.URL+"/big.ics")
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	_, err = client.Fetch(ctx, srv.URL+"/broken.ics")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.Fetch(ctx, "file:///etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestClient_FetchRefusesLoopback(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = w.Write([]byte(calendar()))
	}))
	defer srv.Close()

	client := NewClient(time.Second, 1024, false, nopLogger{})

	_, err := client.Fetch(context.Background(), srv.URL+"/ok.ics")
	assert.ErrorIs(t, err, ErrForbiddenHost)
	assert.False(t, hit)
}

func TestClient_FetchRefusesRedirectToLoopback(t *testing.T) {
	hit := false
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = w.Write([]byte(calendar()))
	}))
	defer internal.Close()

	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL+"/ok.ics", http.StatusFound)
	}))
	defer public.Close()

	client := NewClient(time.Second, 1024, false, nopLogger{})

	// Первый сервер считаем внешним, остальные адреса проверяются как обычно
	publicAddr := public.Listener.Addr().String()
	dialer := &net.Dialer{
		Timeout: time.Second,
		Control: func(network, address string, c syscall.RawConn) error {
			if address == publicAddr {
				return nil
			}
			return denyPrivateNetworks(network, address, c)
		},
	}
	client.httpClient.Transport.(*http.Transport).DialContext = dialer.DialContext

	_, err := client.Fetch(context.Background(), public.URL+"/start.ics")
	assert.ErrorIs(t, err, ErrForbiddenHost)
	assert.False(t, hit)
}

func TestForbiddenIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "127.0.0.1", want: true},
		{ip: "10.0.0.1", want: true},
		{ip: "172.16.5.4", want: true},
		{ip: "192.168.1.1", want: true},
		{ip: "169.254.169.254", want: true},
		{ip: "100.64.0.10", want: true},
		{ip: "0.0.0.0", want: true},
		{ip: "224.0.0.1", want: true},
		{ip: "::1", want: true},
		{ip: "fe80::1", want: true},
		{ip: "fd00::1", want: true},
		{ip: "8.8.8.8", want: false},
		{ip: "2001:4860:4860::8888", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, forbiddenIP(net.ParseIP(tt.ip)))
		})
	}
}

func TestCheckRedirect(t *testing.T) {
	newReq := func(rawURL string) *http.Request {
		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		require.NoError(t, err)
		return req
	}

	assert.NoError(t, checkRedirect(newReq("https://example.com/next.ics"), []*http.Request{newReq("https://example.com/a.ics")}))
	assert.ErrorIs(t, checkRedirect(newReq("file:///etc/passwd"), nil), ErrInvalidURL)

	via := make([]*http.Request, maxRedirects)
	for i := range via {
		via[i] = newReq("https://example.com/a.ics")
	}
	assert.ErrorIs(t, checkRedirect(newReq("https://example.com/next.ics"), via), ErrInvalidResponse)
}
