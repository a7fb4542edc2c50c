package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"
)

// maxRedirects число переходов, после которого загрузка прерывается
const maxRedirects = 5

// Адреса общего NAT провайдеров (RFC 6598)
var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для загрузки календарей по ICS-ссылке
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
	log          Logger
}

// NewClient создает новый экземпляр клиента
// maxBodyBytes <= 0 означает без ограничения размера
// allowPrivate разрешает адреса внутренних сетей (loopback, RFC 1918, link-local)
func NewClient(timeout time.Duration, maxBodyBytes int64, allowPrivate bool, log Logger) *Client {
	dialer := &net.Dialer{Timeout: timeout}
	if !allowPrivate {
		dialer.Control = denyPrivateNetworks
	}

	transport := &http.Transport{
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: timeout,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:       timeout,
			Transport:     transport,
			CheckRedirect: checkRedirect,
		},
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// denyPrivateNetworks проверяет адрес соединения после резолва имени
func denyPrivateNetworks(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenHost, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || forbiddenIP(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenHost, host)
	}
	return nil
}

// forbiddenIP сообщает, ведет ли адрес во внутреннюю сеть
func forbiddenIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified() ||
		sharedAddressSpace.Contains(ip)
}

// checkRedirect ограничивает цепочку редиректов и допускает только http(s)
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d redirects", ErrInvalidResponse, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: redirect to %q", ErrInvalidURL, req.URL.String())
	}
	return nil
}

// Fetch скачивает календарь и возвращает тело ответа
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	c.log.Info("Fetching calendar from host=%s", u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbiddenHost):
			c.log.Warn("Calendar host=%s resolves to a private network", u.Host)
			return nil, fmt.Errorf("%w: %q", ErrForbiddenHost, u.Host)
		case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrInvalidResponse):
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusGone:
		return nil, ErrCalendarNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	reader := io.Reader(resp.Body)
	if c.maxBodyBytes > 0 {
		// Читаем на байт больше лимита
		reader = io.LimitReader(resp.Body, c.maxBodyBytes+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrInvalidResponse, err)
	}
	if c.maxBodyBytes > 0 && int64(len(body)) > c.maxBodyBytes {
		c.log.Warn("Calendar from host=%s exceeds %d bytes", u.Host, c.maxBodyBytes)
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.maxBodyBytes)
	}

	return body, nil
}
