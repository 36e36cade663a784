// Package gateway es el único punto de contacto con el backend remoto de la
// clínica. Cada operación es una petición HTTP independiente acotada por el
// timeout configurado.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lizet96/clinica-dental/config"
)

// maxCuerpoError limita lo que se lee de una respuesta de error
const maxCuerpoError = 4 << 10

// Error describe una respuesta no exitosa del backend
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend respondió %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend respondió %d: %s", e.Op, e.Status, e.Message)
}

// IsTimeout indica si err es un vencimiento del timeout de la petición
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsNotFound indica si el backend respondió 404
func IsNotFound(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Status == http.StatusNotFound
}

// Client es el cliente tipado del backend de la clínica
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	ahora      func() time.Time
}

// Option configura el Client
type Option func(*Client)

// WithHTTPClient reemplaza el cliente HTTP (pruebas)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithReloj fija el reloj usado para el calendario inicial de los doctores
func WithReloj(ahora func() time.Time) Option {
	return func(c *Client) {
		c.ahora = ahora
	}
}

// New crea el cliente con la URL base y el timeout de la configuración
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.APITimeout},
		logger:     logger.With().Str("component", "gateway").Logger(),
		ahora:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// hacer ejecuta una petición JSON. Si out no es nil se decodifica la respuesta.
func (c *Client) hacer(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: serializar petición: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: crear petición: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	inicio := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("op", op).
			Str("method", method).
			Str("path", path).
			Bool("timeout", IsTimeout(err)).
			Msg("error de red con el backend")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &Error{Op: op, Status: resp.StatusCode, Message: mensajeError(resp.Body)}
		c.logger.Error().
			Str("op", op).
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("latency", time.Since(inicio)).
			Msg(gwErr.Message)
		return gwErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: decodificar respuesta: %w", op, err)
	}
	return nil
}

// mensajeError extrae el mensaje de error del cuerpo, sea JSON o texto
func mensajeError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxCuerpoError))
	var doc struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &doc) == nil {
		if doc.Error != "" {
			return doc.Error
		}
		if doc.Message != "" {
			return doc.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
